package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/excursions-app/backend/internal/domain"
)

// SessionVerifier resolves a bearer token to a user. Implemented by
// service.AuthService; defined here so the middleware can be tested with a
// mock and does not import the service package.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (domain.User, error)
}

type contextKey struct{ name string }

var (
	userKey  = &contextKey{"user"}
	tokenKey = &contextKey{"token"}
)

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. The resolved user and the raw
// token are stored on the request context for handlers to read via
// UserFrom / TokenFrom. Requests failing verification get HTTP 401 with a
// JSON error body and never reach the next handler.
func NewAuthenticator(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			user, err := verifier.VerifySession(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user stored by NewAuthenticator.
// The boolean is false on requests that did not pass through it.
func UserFrom(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

// TokenFrom returns the raw bearer token stored by NewAuthenticator.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid authentication status"})
}
