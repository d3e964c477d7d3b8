// Package middleware holds the HTTP middleware chain of the API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kilianp07/fleetcompute/api/respond"
	"github.com/kilianp07/fleetcompute/auth"
)

type claimsKey struct{}

// Verifier validates bearer tokens.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Bearer rejects requests without a valid "Bearer <token>" Authorization
// header and stores the token claims in the request context.
func Bearer(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}
			claims, err := v.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a context carrying claims.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom returns the claims stored by Bearer.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok && c != nil
}
