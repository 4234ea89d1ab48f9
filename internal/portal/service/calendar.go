package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/pkg/cryptox"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultOAuthStateTTL is how long a user has to complete the consent screen.
const DefaultOAuthStateTTL = 10 * time.Minute

// GoogleCalendarScopes are requested on every consent.
var GoogleCalendarScopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/calendar.readonly",
}

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidState           = errors.New("invalid or expired oauth state")
	ErrTokenExchange          = errors.New("token exchange failed")
	ErrNoRefreshToken         = errors.New("provider returned no refresh token")
	ErrNotConnected           = errors.New("calendar not connected")
)

// NewGoogleOAuthConfig returns nil when any of the client settings is
// missing, which leaves the calendar integration unconfigured.
func NewGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       GoogleCalendarScopes,
		Endpoint:     google.Endpoint,
	}
}

// CalendarService runs the Google calendar consent flow. The PKCE verifier
// and the refresh token are sealed before they reach the store.
type CalendarService struct {
	Store   store.Store
	OAuth   *oauth2.Config  // nil when unconfigured
	Sealer  *cryptox.Sealer // nil when MASTER_KEY is unset
	Audit   *AuditService
	Metrics *metrics.Metrics

	// HTTPClient is used for the token exchange when set.
	HTTPClient *http.Client
	StateTTL   time.Duration
	Now        func() time.Time
}

// Configured reports whether both the OAuth client and the sealing key are set.
func (s *CalendarService) Configured() bool {
	return s != nil && s.OAuth != nil && s.Sealer != nil
}

// AuthURL records a pending consent for userID and returns the provider's
// consent URL.
func (s *CalendarService) AuthURL(ctx context.Context, userID string) (string, error) {
	if !s.Configured() {
		return "", fmt.Errorf("google calendar: %w", domain.ErrMissingSecret)
	}
	if userID == "" {
		return "", ErrAuthenticationRequired
	}

	state, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	stateHash := cryptox.FingerprintToken(state)
	verifier := oauth2.GenerateVerifier()

	sealed, err := s.Sealer.Seal([]byte(verifier), []byte(stateHash))
	if err != nil {
		return "", fmt.Errorf("failed to seal verifier: %w", err)
	}

	now := clock(s.Now)
	ttl := s.StateTTL
	if ttl <= 0 {
		ttl = DefaultOAuthStateTTL
	}
	if err := s.Store.OAuthStates().CreateOAuthState(ctx, domain.OAuthState{
		StateHash: stateHash,
		UserID:    userID,
		Provider:  domain.ProviderGoogle,
		Verifier:  sealed,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return s.OAuth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	), nil
}

// HandleCallback consumes the state, exchanges the code and stores the
// connection. A state can only be used once.
func (s *CalendarService) HandleCallback(ctx context.Context, state, code string) (conn domain.CalendarConnection, err error) {
	if !s.Configured() {
		return domain.CalendarConnection{}, fmt.Errorf("google calendar: %w", domain.ErrMissingSecret)
	}
	if state == "" {
		return domain.CalendarConnection{}, ErrInvalidState
	}

	now := clock(s.Now)
	pending, err := s.Store.OAuthStates().ConsumeOAuthState(ctx, cryptox.FingerprintToken(state), now)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CalendarConnection{}, ErrInvalidState
	}
	if err != nil {
		return domain.CalendarConnection{}, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	defer func() { s.Metrics.CalendarConnect(pending.Provider, err) }()

	verifier, err := s.Sealer.Open(pending.Verifier, []byte(pending.StateHash))
	if err != nil {
		return domain.CalendarConnection{}, ErrInvalidState
	}

	if s.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.HTTPClient)
	}
	tok, err := s.OAuth.Exchange(ctx, code, oauth2.VerifierOption(string(verifier)))
	if err != nil {
		slogx.FromContext(ctx).Warn("google token exchange failed", "user_id", pending.UserID, "error", err)
		return domain.CalendarConnection{}, ErrTokenExchange
	}
	if tok.RefreshToken == "" {
		return domain.CalendarConnection{}, ErrNoRefreshToken
	}

	sealedRefresh, err := s.Sealer.Seal([]byte(tok.RefreshToken), refreshTokenAD(pending.UserID, pending.Provider))
	if err != nil {
		return domain.CalendarConnection{}, fmt.Errorf("failed to seal refresh token: %w", err)
	}

	conn = domain.CalendarConnection{
		UserID:       pending.UserID,
		Provider:     pending.Provider,
		RefreshToken: sealedRefresh,
		Scopes:       grantedScopes(tok, s.OAuth.Scopes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry.UTC()
		conn.AccessTokenExpiry = &exp
	}

	if err := s.Store.CalendarConnections().UpsertCalendarConnection(ctx, conn); err != nil {
		return domain.CalendarConnection{}, fmt.Errorf("failed to store calendar connection: %w", err)
	}

	s.Audit.Record(ctx, pending.UserID, domain.AuditCalendarConnect, pending.UserID, map[string]string{
		"provider": pending.Provider,
		"scopes":   strings.Join(conn.Scopes, " "),
	})
	slogx.FromContext(ctx).Info("calendar connected", "user_id", pending.UserID, "provider", pending.Provider)

	return conn, nil
}

// Connection returns the user's stored connection.
func (s *CalendarService) Connection(ctx context.Context, userID string) (domain.CalendarConnection, error) {
	conn, err := s.Store.CalendarConnections().GetCalendarConnection(ctx, userID, domain.ProviderGoogle)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CalendarConnection{}, ErrNotConnected
	}
	return conn, err
}

// Disconnect forgets the user's connection. Disconnecting twice is fine.
func (s *CalendarService) Disconnect(ctx context.Context, userID string) error {
	err := s.Store.CalendarConnections().DeleteCalendarConnection(ctx, userID, domain.ProviderGoogle)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// TokenSource returns a refreshing token source for the user's calendar.
func (s *CalendarService) TokenSource(ctx context.Context, userID string) (oauth2.TokenSource, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("google calendar: %w", domain.ErrMissingSecret)
	}
	conn, err := s.Connection(ctx, userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Sealer.Open(conn.RefreshToken, refreshTokenAD(conn.UserID, conn.Provider))
	if err != nil {
		return nil, fmt.Errorf("failed to open refresh token: %w", err)
	}
	if s.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.HTTPClient)
	}
	return s.OAuth.TokenSource(ctx, &oauth2.Token{RefreshToken: string(refresh)}), nil
}

// CleanupExpiredStates deletes consents that were never completed.
func (s *CalendarService) CleanupExpiredStates(ctx context.Context) (int64, error) {
	return s.Store.OAuthStates().DeleteExpiredOAuthStates(ctx, clock(s.Now))
}

func refreshTokenAD(userID, provider string) []byte {
	return []byte("calendar:" + provider + ":" + userID)
}

func grantedScopes(tok *oauth2.Token, requested []string) []string {
	if raw, ok := tok.Extra("scope").(string); ok && raw != "" {
		return strings.Fields(raw)
	}
	return append([]string(nil), requested...)
}
