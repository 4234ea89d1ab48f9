package jwtx

import (
	"errors"
	"time"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience value the token must contain (claims.aud). Empty means "don't care".
	Audience string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	Leeway time.Duration
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")

	// ErrWeakSecret is returned for HMAC secrets shorter than 32 bytes.
	ErrWeakSecret = errors.New("jwtx: signing secret too short")

	// ErrUnconfigured means no verification secret was provided. It is
	// raised on first use rather than at start-up.
	ErrUnconfigured = errors.New("jwtx: verifier not configured")
)

// Unconfigured is a Verifier used when the signing secret is missing. Every
// call fails with ErrUnconfigured.
type Unconfigured struct{}

func (Unconfigured) Verify(string) (Claims, error) {
	return Claims{}, ErrUnconfigured
}
