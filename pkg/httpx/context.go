package httpx

import (
	"context"

	"github.com/aussiebroadwan/spotter/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID         ctxKey = "user_id"
	CtxKeyClaims         ctxKey = "claims"
	CtxKeyImpersonatedBy ctxKey = "impersonated_by"
)

// ContextWithClaims stores verified claims and the subject as the effective user.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// ClaimsFromContext returns the verified token claims. These always describe
// the authenticated caller, even while impersonating.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// SubjectFromContext returns the authenticated caller's user ID.
func SubjectFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.Subject
	}
	return ""
}

// UserIDFromContext returns the effective user ID: the impersonated user when
// an acting-as substitution is in place, the caller otherwise.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

// ContextWithActingAs substitutes target as the effective user.
func ContextWithActingAs(ctx context.Context, adminID, target string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, target)
	ctx = context.WithValue(ctx, CtxKeyImpersonatedBy, adminID)
	return ctx
}

// ImpersonatedBy returns the administrator acting as the effective user.
func ImpersonatedBy(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyImpersonatedBy).(string)
	return id, ok && id != ""
}
