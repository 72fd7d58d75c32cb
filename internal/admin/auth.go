package admin

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/config"
	"github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
)

// Auth is the static-credential admin gate.
type Auth struct {
	username string
	password string
}

func NewAuth(cfg config.AdminConfig) *Auth {
	return &Auth{
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (a *Auth) VerifyCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// Authenticate checks the static credentials and returns a typed
// UnauthorizedError on mismatch.
func (a *Auth) Authenticate(username, password string) error {
	if !a.VerifyCredentials(username, password) {
		return errors.NewUnauthorizedError("invalid credentials")
	}
	return nil
}

// RequireAdmin guards admin routes. Unauthenticated sessions get a
// structured JSON result rather than a redirect; the API has no HTML side.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, ok := session.FromContext(r.Context())
			if !ok || !state.Admin {
				ue := errors.NewUnauthorizedError("Unauthorized")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if err := json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   ue.Message,
				}); err != nil {
					logger.Error("failed to encode response", zap.Error(err))
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
