package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
	RolesKey    contextKey = "roles"
	TokenKey    contextKey = "token"
)

// Auth is the per-request gate: bearer extraction, token validation,
// session-activity check. Every failure collapses to a bare 401 so the
// response never reveals which check failed; the reason goes to the log.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			token := parts[1]

			claims, err := authService.Authorize(r.Context(), token)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] authorization failed: %v", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				log.Printf("ERROR [middleware.Auth] failed to parse subject claim: %v", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, RolesKey, claims.Roles)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates an endpoint on a role claim. The caller is already
// authenticated here, so a missing role is a 403, not a 401.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := GetRoles(r.Context())
			if !ok {
				log.Printf("ERROR [middleware.RequireRole] no roles in request context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, r2 := range roles {
				if r2 == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Printf("ERROR [middleware.RequireRole] %v: %q", domain.ErrInsufficientRole, role)
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

func GetRoles(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(RolesKey).([]string)
	return roles, ok
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
