package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetcompute/auth"
	coremon "github.com/kilianp07/fleetcompute/core/monitoring"
	"github.com/kilianp07/fleetcompute/infra/logger"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestBearer(t *testing.T) {
	iss := auth.NewIssuer("secret", time.Hour)
	token, err := iss.Issue(auth.User{Username: "zoox_dev", Company: "Zoox", Role: "developer"})
	require.NoError(t, err)

	var seen *auth.Claims
	h := Bearer(iss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		code   int
		msg    string
	}{
		{"missing", "", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"valid", "Bearer " + token, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, decodeError(t, rr))
			}
		})
	}
	require.NotNil(t, seen)
	assert.Equal(t, "Zoox", seen.Company)
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, got)
	assert.Equal(t, got, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc", got)
}

type recordLogger struct {
	mu     sync.Mutex
	fields []map[string]any
}

func (r *recordLogger) Infow(_ string, f map[string]any) {
	r.mu.Lock()
	r.fields = append(r.fields, f)
	r.mu.Unlock()
}

func TestAccessLog(t *testing.T) {
	rec := &recordLogger{}
	r := mux.NewRouter()
	r.Use(RequestID, AccessLog(rec))
	r.Handle("/jobs/{id}", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("x"))
	}))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/3", nil))

	require.Len(t, rec.fields, 1)
	f := rec.fields[0]
	assert.Equal(t, http.StatusTeapot, f["status"])
	assert.Equal(t, "/jobs/{id}", f["route"])
	assert.Equal(t, "/jobs/3", f["path"])
	assert.Equal(t, 1, f["bytes"])
	assert.NotEmpty(t, f["request_id"])
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	}
	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/healthz", "GET", "200")))

	again, err := NewHTTPMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, m.requests, again.requests)
}

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) Recover()            {}
func (r *recordMonitor) Flush(time.Duration) {}

func TestRecover(t *testing.T) {
	mon := &recordMonitor{}
	coremon.Init(mon)
	defer coremon.Init(coremon.NopMonitor{})

	h := Recover(logger.NopLogger{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ercot/current", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", decodeError(t, rr))
	require.Error(t, mon.err)
	assert.Equal(t, "boom", mon.err.Error())
	assert.Equal(t, "/ercot/current", mon.tags["path"])
}
