// Package respond writes JSON responses for the HTTP API.
package respond

import (
	"encoding/json"
	"net/http"
	"time"
)

// Clock returns the current time. Handlers take one so tests can pin it.
type Clock func() time.Time

// UTCNow is the default Clock.
func UTCNow() time.Time { return time.Now().UTC() }

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// MethodNotAllowed answers 405 in the API error format.
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// NotFound answers 404 in the API error format.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		Error(w, http.StatusNotFound, "not found")
	})
}
