package middleware

import (
	"fmt"
	"net/http"

	"github.com/kilianp07/fleetcompute/api/respond"
	corelogger "github.com/kilianp07/fleetcompute/core/logger"
	coremon "github.com/kilianp07/fleetcompute/core/monitoring"
)

// Recover turns handler panics into 500 responses and reports them to the
// configured monitor.
func Recover(log corelogger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					err, ok := v.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", v)
					}
					log.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, err)
					coremon.CaptureException(err, map[string]string{
						"module":     "api",
						"path":       r.URL.Path,
						"request_id": RequestIDFrom(r.Context()),
					})
					respond.Error(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
