package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
)

type sessionContextKey struct{}

// SessionResolver looks up an admin session by id.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*entities.AdminSession, error)
}

// SessionMiddleware attaches the admin session named by the session cookie
// to the request context. Requests without a valid session pass through
// anonymously.
func SessionMiddleware(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("Failed to resolve admin session")
			}
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdminSession(r.Context(), session)))
		})
	}
}

// WithAdminSession returns a context carrying session.
func WithAdminSession(ctx context.Context, session *entities.AdminSession) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// AdminSessionFromContext returns the admin session, or nil for anonymous
// requests.
func AdminSessionFromContext(ctx context.Context) *entities.AdminSession {
	session, _ := ctx.Value(sessionContextKey{}).(*entities.AdminSession)
	return session
}

// RequireAdmin rejects anonymous requests with 401 before the handler runs.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if AdminSessionFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
