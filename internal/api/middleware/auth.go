package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/proconnect/backend/internal/api/types"
	"github.com/proconnect/backend/internal/models"
	"github.com/proconnect/backend/internal/repository"
	"github.com/proconnect/backend/internal/services"
)

type userKeyType string

const userKey userKeyType = "current_user"

const bearerPrefix = "Bearer "

// Auth validates a Bearer token, resolves its subject to a user record and
// injects the user into the request context. The DB lookup happens on every
// call; resolved identities are not cached.
func Auth(tokens services.TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(ah, bearerPrefix) {
				types.WriteErrorStr(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
				return
			}
			subject, err := tokens.Verify(strings.TrimSpace(ah[len(bearerPrefix):]))
			if err != nil {
				types.WriteErrorStr(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}
			uid, err := uuid.Parse(subject)
			if err != nil {
				types.WriteErrorStr(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}
			var u models.User
			if err := users.GetByID(r.Context(), uid, &u); err != nil {
				types.WriteErrorStr(w, http.StatusUnauthorized, "unauthorized", "user not found")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, &u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user placed in the context by Auth,
// or nil on routes that do not require identity.
func CurrentUser(ctx context.Context) *models.User {
	if v := ctx.Value(userKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
