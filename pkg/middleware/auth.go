package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/webproformation/LaboutiqueOK-sub001/pkg/auth"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
)

type claimsKey struct{}

// ClaimsFrom returns the JWT claims stored by Auth, or nil.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}

// UserID returns the authenticated user id, or 0 when the request is
// anonymous.
func UserID(ctx context.Context) uint {
	if c := ClaimsFrom(ctx); c != nil {
		return c.UserID
	}
	return 0
}

// Auth requires a valid Bearer token and stores its claims in the request
// context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := parseBearer(r)
		if !ok {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores claims when a valid token is present but lets
// anonymous requests through. Used by the wishlist routes, where the owner
// may be a session id instead of a user.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := parseBearer(r); ok {
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func parseBearer(r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return nil, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// RoleLookup resolves the stored role for a user id. The lookup runs on
// every admin-gated request so demotions take effect immediately, token
// claims notwithstanding.
type RoleLookup func(userID uint) (string, error)

// RequireAdmin gates a route group on the roles table. Lookup failures
// resolve to the default "user" role and are rejected.
func RequireAdmin(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFrom(r.Context())
			if claims == nil {
				response.Unauthorized(w)
				return
			}

			role, err := lookup(claims.UserID)
			if err != nil || role == "" {
				role = "user"
			}

			if role != "admin" {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
