package httpx

import (
	"net/http"
	"slices"

	"github.com/aussiebroadwan/spotter/pkg/jwtx"
)

// RequireAppRole allows callers whose app_metadata.role is one of roles.
// It must run after AuthnMiddleware.
func RequireAppRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			if !slices.Contains(roles, c.AppRole()) {
				WriteError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is RequireAppRole(jwtx.RoleAdmin).
func RequireAdmin() Middleware {
	return RequireAppRole(jwtx.RoleAdmin)
}
