// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/escobarvape/backend/pkg/middleware"
	"github.com/escobarvape/backend/pkg/response"
)

// HasRole returns middleware that allows access only to callers whose token
// carries one of the given roles. Requires middleware.Auth to have already
// run (claims must be in context).
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := middleware.ClaimsFromCtx(r.Context())
			if !ok || !allowed[claims.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
