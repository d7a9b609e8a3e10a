package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/repo"
)

type key string

const userKey key = "auth_user"

// Authenticator verifies the bearer token on every request and resolves its
// subject against the user store. A valid signature is not enough: if the
// subject no longer exists (deleted account), the request is rejected. All
// failure causes collapse into the same 401 so callers cannot tell an expired
// token from a forged one.
func Authenticator(tokens *auth.TokenIssuer, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				metrics.IncAuthFailure("header")
				unauthorized(w)
				return
			}

			login, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				metrics.IncAuthFailure("token")
				unauthorized(w)
				return
			}

			user, err := users.GetByLogin(r.Context(), login)
			if err != nil {
				metrics.IncAuthFailure("subject")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user placed in the context by Authenticator.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying the user; exported for handler tests
// that bypass the middleware.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"could not validate credentials"}`))
}
