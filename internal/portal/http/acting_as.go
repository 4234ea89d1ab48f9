package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/spotter/pkg/httpx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

// ActingAsResolver reports who an administrator is currently acting as.
type ActingAsResolver interface {
	ActingAs(ctx context.Context, adminID string) (string, bool)
}

// ActingAsMiddleware swaps the effective user for the impersonation target
// when an administrator has an active session. It must run after
// authentication. A failed lookup leaves the caller's own identity in place.
func ActingAsMiddleware(resolver ActingAsResolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok || !claims.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			target, ok := resolver.ActingAs(r.Context(), claims.Subject)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := httpx.ContextWithActingAs(r.Context(), claims.Subject, target)
			ctx = slogx.Enrich(ctx, "acting_as", target)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
