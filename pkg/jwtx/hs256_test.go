package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("super-secret-jwt-token-with-at-least-32-characters-long")

func newHS256(t *testing.T, opts jwtx.VerifyOptions) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256(testSecret, opts)
	require.NoError(t, err)
	return h
}

func TestHS256RoundTrip(t *testing.T) {
	h := newHS256(t, jwtx.VerifyOptions{Issuer: "spotter-test", Audience: "authenticated"})

	claims := jwtx.NewAccessClaims("user-1", "a@example.com", jwtx.RoleAdmin, "org-1",
		time.Minute, "spotter-test", []string{"authenticated"}, time.Now())

	raw, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "a@example.com", got.Email)
	require.True(t, got.IsAdmin())
	require.Equal(t, "org-1", got.AppMetadata.OrganizationID)
}

func TestHS256RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256VerifyFailures(t *testing.T) {
	h := newHS256(t, jwtx.VerifyOptions{Issuer: "spotter-test"})
	now := time.Now()

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "", "", "", time.Minute, "spotter-test", nil, now.Add(-time.Hour))
		raw, err := h.Sign(c)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "", "", "", time.Minute, "someone-else", nil, now)
		raw, err := h.Sign(c)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("tampered signature", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "", "", "", time.Minute, "spotter-test", nil, now)
		raw, err := h.Sign(c)
		require.NoError(t, err)

		parts := strings.Split(raw, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		_, err = h.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte(strings.Repeat("x", 40)), jwtx.VerifyOptions{})
		require.NoError(t, err)
		raw, err := other.Sign(jwtx.NewAccessClaims("u", "", "", "", time.Minute, "spotter-test", nil, now))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("alg none", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "", "", "", time.Minute, "spotter-test", nil, now)
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := jwtx.NewAccessClaims("", "", "", "", time.Minute, "spotter-test", nil, now)
		raw, err := h.Sign(c)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}

func TestUnconfiguredVerifier(t *testing.T) {
	var v jwtx.Verifier = jwtx.Unconfigured{}
	_, err := v.Verify("anything")
	require.ErrorIs(t, err, jwtx.ErrUnconfigured)
}

func TestAppRoleDefaultsToMember(t *testing.T) {
	require.Equal(t, jwtx.RoleMember, jwtx.Claims{}.AppRole())
	require.False(t, jwtx.Claims{}.IsAdmin())
}
