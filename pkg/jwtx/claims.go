package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Application roles carried in app_metadata.role. The managed auth backend
// sets these; the service only reads them.
const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleStaff  = "staff"
	RoleMember = "member"
)

// DefaultAccessTokenTTL matches the backend's default session length.
const DefaultAccessTokenTTL = time.Hour

// AppMetadata is the server-controlled part of the user record that the
// auth backend copies into every access token.
type AppMetadata struct {
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	Provider       string `json:"provider,omitempty"`
}

// Claims are the access-token claims issued by the managed auth backend.
type Claims struct {
	jwt.RegisteredClaims

	Email       string      `json:"email,omitempty"`
	Role        string      `json:"role,omitempty"` // database role, usually "authenticated"
	SessionID   string      `json:"session_id,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

// NewAccessClaims builds minimally-correct claims. It is used by the CLI and
// tests; production tokens come from the backend.
func NewAccessClaims(
	subject, email, appRole, organizationID string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:     email,
		Role:      "authenticated",
		SessionID: NewJTI(),
		AppMetadata: AppMetadata{
			Role:           appRole,
			OrganizationID: organizationID,
		},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// IsAdmin reports whether the token belongs to a platform administrator.
func (c Claims) IsAdmin() bool {
	return c.AppMetadata.Role == RoleAdmin
}

// AppRole returns the application role, falling back to member.
func (c Claims) AppRole() string {
	if c.AppMetadata.Role == "" {
		return RoleMember
	}
	return c.AppMetadata.Role
}
