package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/spotter/pkg/jwtx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, true)
}

// OptionalAuthnMiddleware attaches claims when a valid bearer token is present
// and passes the request through unauthenticated otherwise.
func OptionalAuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, false)
}

func authn(v jwtx.Verifier, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				if required {
					writeBearerError(w, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.Verify(raw)
			if errors.Is(err, jwtx.ErrUnconfigured) {
				log.Error("jwt verifier not configured", "err", err)
				if required {
					WriteError(w, http.StatusInternalServerError, "server_error", "authentication is not configured")
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				if required {
					writeBearerError(w, "token verification failed")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx = ContextWithClaims(ctx, claims)
			ctx = slogx.Enrich(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(h[7:])
	return raw, raw != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
