package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey int

const (
	stateKey contextKey = iota
	idKey
)

func FromContext(ctx context.Context) (*State, bool) {
	state, ok := ctx.Value(stateKey).(*State)
	return state, ok
}

func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idKey).(string)
	return id, ok
}

// Middleware loads the session before the handler runs and persists it after,
// when a mutation marked it dirty. Unknown or missing cookies get a fresh
// session and a new cookie.
func Middleware(store *Store, cookieName string, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			var state *State

			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
				loaded, err := store.Load(r.Context(), sessionID)
				if err != nil {
					logger.Error("loading session", zap.String("sessionId", sessionID), zap.Error(err))
				}
				state = loaded
			}

			if state == nil {
				sessionID = uuid.New().String()
				state = NewState()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), stateKey, state)
			ctx = context.WithValue(ctx, idKey, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))

			if state.Dirty() {
				if err := store.Save(r.Context(), sessionID, state); err != nil {
					logger.Error("persisting session", zap.String("sessionId", sessionID), zap.Error(err))
				}
			}
		})
	}
}
