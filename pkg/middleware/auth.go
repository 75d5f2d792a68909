package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/escobarvape/backend/pkg/auth"
	"github.com/escobarvape/backend/pkg/response"
)

// claimsKey is the unexported context key for the verified token claims.
type claimsKey struct{}

// Auth extracts and verifies the bearer token on protected routes.
//
// A missing credential is 401 Unauthenticated; a credential that fails
// verification (expired, malformed, bad signature) is 403 Forbidden. On
// success the verified claims (identity, role, branch) are attached to the
// request context for downstream handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Forbidden(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the verified claims attached by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// WithClaims attaches claims to ctx. Exported for tests that exercise
// role-sensitive handlers without running the full middleware chain.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
