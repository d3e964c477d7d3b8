// Package session serves operator login.
package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/fleetcompute/api/respond"
	"github.com/kilianp07/fleetcompute/auth"
	"github.com/kilianp07/fleetcompute/core/logger"
)

// Authenticator checks a username/password pair.
type Authenticator interface {
	Authenticate(username, password string) (auth.User, error)
}

// TokenIssuer signs a session token for a user.
type TokenIssuer interface {
	Issue(u auth.User) (string, error)
}

type loginRequest struct {
	Username string `json:"username"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// NewLoginHandler authenticates POST /auth/login. The username may be sent
// as "username" or "user".
func NewLoginHandler(users Authenticator, tokens TokenIssuer, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if r.Body != nil {
			_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req)
		}
		username := req.Username
		if username == "" {
			username = req.User
		}
		if username == "" || req.Password == "" {
			respond.Error(w, http.StatusBadRequest, "username and password required")
			return
		}
		u, err := users.Authenticate(username, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warnf("failed login for %s", username)
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			log.Errorf("authenticate %s: %v", username, err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
		token, err := tokens.Issue(u)
		if err != nil {
			log.Errorf("issue token: %v", err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respond.JSON(w, http.StatusOK, LoginResponse{Token: token, Company: u.Company, Role: u.Role, Username: u.Username})
	})
}
