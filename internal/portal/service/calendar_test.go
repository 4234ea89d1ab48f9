package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeGoogle is a token endpoint that checks the PKCE verifier against the
// challenge captured from the consent URL.
type fakeGoogle struct {
	mu        sync.Mutex
	challenge string
	srv       *httptest.Server
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	g := &fakeGoogle{}
	g.srv = httptest.NewServer(http.HandlerFunc(g.token))
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGoogle) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := map[string]any{"token_type": "Bearer", "expires_in": 3600}
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		sum := sha256.Sum256([]byte(r.PostForm.Get("code_verifier")))
		g.mu.Lock()
		ok := base64.RawURLEncoding.EncodeToString(sum[:]) == g.challenge
		g.mu.Unlock()
		if r.PostForm.Get("code") != "auth-code" || !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		resp["access_token"] = "at-1"
		resp["refresh_token"] = "rt-1"
		resp["scope"] = "calendar.events calendar.readonly"
	case "refresh_token":
		if r.PostForm.Get("refresh_token") != "rt-1" {
			http.Error(w, "bad refresh token", http.StatusBadRequest)
			return
		}
		resp["access_token"] = "at-2"
	default:
		http.Error(w, "unsupported grant", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newCalendarService(t *testing.T, g *fakeGoogle, clk *fakeClock) (*CalendarService, *AuditService) {
	t.Helper()
	s := newTestStore(t)

	sealer, err := cryptox.NewSealer(bytes.Repeat([]byte{7}, 32), "calendar")
	require.NoError(t, err)

	audit := &AuditService{Store: s, Now: clk.Now}
	return &CalendarService{
		Store: s,
		OAuth: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "https://app.example.com/api/auth/google/callback",
			Scopes:       GoogleCalendarScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://accounts.example.com/o/oauth2/auth",
				TokenURL:  g.srv.URL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		Sealer:     sealer,
		Audit:      audit,
		HTTPClient: g.srv.Client(),
		Now:        clk.Now,
	}, audit
}

func consent(t *testing.T, svc *CalendarService, g *fakeGoogle, userID string) string {
	t.Helper()
	raw, err := svc.AuthURL(context.Background(), userID)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	require.Equal(t, "offline", q.Get("access_type"))
	require.Equal(t, "consent", q.Get("prompt"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))
	require.Equal(t, "client-id", q.Get("client_id"))
	require.NotEmpty(t, q.Get("state"))

	g.mu.Lock()
	g.challenge = q.Get("code_challenge")
	g.mu.Unlock()
	return q.Get("state")
}

func TestCalendarConsentFlow(t *testing.T) {
	ctx := context.Background()
	g := newFakeGoogle(t)
	clk := newFakeClock()
	svc, audit := newCalendarService(t, g, clk)

	state := consent(t, svc, g, ownerID)

	conn, err := svc.HandleCallback(ctx, state, "auth-code")
	require.NoError(t, err)
	require.Equal(t, ownerID, conn.UserID)
	require.Equal(t, domain.ProviderGoogle, conn.Provider)
	require.Equal(t, []string{"calendar.events", "calendar.readonly"}, conn.Scopes)
	require.NotContains(t, string(conn.RefreshToken), "rt-1")
	require.NotNil(t, conn.AccessTokenExpiry)

	t.Run("state is single use", func(t *testing.T) {
		_, err := svc.HandleCallback(ctx, state, "auth-code")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("token source refreshes with stored token", func(t *testing.T) {
		ts, err := svc.TokenSource(ctx, ownerID)
		require.NoError(t, err)
		tok, err := ts.Token()
		require.NoError(t, err)
		require.Equal(t, "at-2", tok.AccessToken)
	})

	events, err := audit.List(ctx, domain.AuditFilter{Action: domain.AuditCalendarConnect})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "google", events[0].Metadata["provider"])

	require.NoError(t, svc.Disconnect(ctx, ownerID))
	require.NoError(t, svc.Disconnect(ctx, ownerID))
	_, err = svc.Connection(ctx, ownerID)
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestCalendarCallbackRejects(t *testing.T) {
	ctx := context.Background()
	g := newFakeGoogle(t)
	clk := newFakeClock()
	svc, _ := newCalendarService(t, g, clk)

	t.Run("unknown state", func(t *testing.T) {
		_, err := svc.HandleCallback(ctx, "made-up", "auth-code")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("empty state", func(t *testing.T) {
		_, err := svc.HandleCallback(ctx, "", "auth-code")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("expired state", func(t *testing.T) {
		state := consent(t, svc, g, ownerID)
		clk.Advance(DefaultOAuthStateTTL + time.Second)
		_, err := svc.HandleCallback(ctx, state, "auth-code")
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("bad code", func(t *testing.T) {
		state := consent(t, svc, g, ownerID)
		_, err := svc.HandleCallback(ctx, state, "wrong-code")
		require.ErrorIs(t, err, ErrTokenExchange)
	})

	t.Run("anonymous consent", func(t *testing.T) {
		_, err := svc.AuthURL(ctx, "")
		require.ErrorIs(t, err, ErrAuthenticationRequired)
	})
}

func TestCalendarUnconfigured(t *testing.T) {
	ctx := context.Background()
	svc := &CalendarService{Store: newTestStore(t)}

	require.False(t, svc.Configured())
	_, err := svc.AuthURL(ctx, ownerID)
	require.ErrorIs(t, err, domain.ErrMissingSecret)
	_, err = svc.HandleCallback(ctx, "state", "code")
	require.ErrorIs(t, err, domain.ErrMissingSecret)

	require.Nil(t, NewGoogleOAuthConfig("id", "", "https://app.example.com/cb"))
	cfg := NewGoogleOAuthConfig("id", "secret", "https://app.example.com/cb")
	require.NotNil(t, cfg)
	require.Equal(t, GoogleCalendarScopes, cfg.Scopes)
}

func TestCleanupExpiredStates(t *testing.T) {
	ctx := context.Background()
	g := newFakeGoogle(t)
	clk := newFakeClock()
	svc, _ := newCalendarService(t, g, clk)

	consent(t, svc, g, ownerID)
	consent(t, svc, g, memberID)

	n, err := svc.CleanupExpiredStates(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	clk.Advance(time.Hour)
	n, err = svc.CleanupExpiredStates(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}
