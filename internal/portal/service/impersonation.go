package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/pkg/idx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// DefaultImpersonationTTL bounds a session when IMPERSONATION_TTL is unset.
const DefaultImpersonationTTL = 2 * time.Hour

const maxReasonLength = 500

var (
	ErrImpersonationActive = errors.New("an impersonation session is already active")
	ErrAdminRequired       = errors.New("administrator identity required")
	ErrTargetNotFound      = errors.New("target user not found")
	ErrInvalidTarget       = errors.New("target user cannot be impersonated")
	ErrReasonRequired      = errors.New("a reason is required")
	ErrReasonTooLong       = errors.New("reason is too long")
	ErrOTPRequired         = errors.New("one-time code required")
	ErrInvalidTOTPCode     = errors.New("invalid TOTP code")
)

// UserDirectory resolves users that have not been mirrored into the local
// store yet. Unknown IDs yield an error wrapping domain.ErrUserNotFound.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

type StartRequest struct {
	AdminID      string
	TargetUserID string
	Reason       string
	OTP          string
}

// ImpersonationService manages the administrator acting-as boundary.
// Sessions may live in a different backend (Redis) than the rest of the
// data, so they are injected separately from Store.
type ImpersonationService struct {
	Store     store.Store
	Sessions  store.ImpersonationSessions
	Directory UserDirectory // optional
	Audit     *AuditService
	Metrics   *metrics.Metrics

	// TTL bounds new sessions. Zero means sessions last until stopped.
	TTL time.Duration
	Now func() time.Time
}

// Status reports the administrator's active session. It never fails: any
// backend error is logged and reported as no session.
func (s *ImpersonationService) Status(ctx context.Context, adminID string) domain.ImpersonationStatus {
	if adminID == "" {
		return domain.ImpersonationStatus{}
	}

	now := clock(s.Now)
	sess, err := s.Sessions.GetActiveSession(ctx, adminID, now)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("impersonation status check failed",
				"admin_id", adminID,
				"error", err,
			)
		}
		return domain.ImpersonationStatus{}
	}
	if !sess.Active(now) {
		return domain.ImpersonationStatus{}
	}
	return domain.ImpersonationStatus{Session: &sess}
}

// ActingAs returns the user the administrator is currently acting as.
func (s *ImpersonationService) ActingAs(ctx context.Context, adminID string) (string, bool) {
	st := s.Status(ctx, adminID)
	if !st.Active() {
		return "", false
	}
	return st.Session.TargetUserID, true
}

// Stop ends the administrator's session. Stopping with nothing active
// succeeds with an empty result, so concurrent stops all succeed.
func (s *ImpersonationService) Stop(ctx context.Context, adminID string) (domain.StopResult, error) {
	if adminID == "" {
		return domain.StopResult{}, ErrAdminRequired
	}

	// A session past its expiry is recorded as expired, not stopped.
	if _, err := s.ExpireSessions(ctx); err != nil {
		slogx.FromContext(ctx).Warn("failed to sweep expired impersonation sessions", "error", err)
	}

	now := clock(s.Now)
	ended, err := s.Sessions.EndSession(ctx, adminID, domain.EndReasonStopped, now)
	if errors.Is(err, store.ErrNotFound) {
		return domain.StopResult{}, nil
	}
	if err != nil {
		return domain.StopResult{}, fmt.Errorf("failed to end impersonation session: %w", err)
	}

	s.Metrics.ImpersonationEvent(metrics.EventStop)
	s.Audit.Record(ctx, adminID, domain.AuditImpersonationStop, ended.TargetUserID, map[string]string{
		"session_id": ended.ID.String(),
	})
	slogx.FromContext(ctx).Info("impersonation stopped",
		"admin_id", adminID,
		"target_user_id", ended.TargetUserID,
		"session_id", ended.ID.String(),
	)

	return domain.StopResult{Ended: &ended}, nil
}

// Start opens a session for req.AdminID acting as req.TargetUserID.
func (s *ImpersonationService) Start(ctx context.Context, req StartRequest) (domain.ImpersonationSession, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	req.TargetUserID = strings.TrimSpace(req.TargetUserID)

	switch {
	case req.AdminID == "":
		return domain.ImpersonationSession{}, ErrAdminRequired
	case req.TargetUserID == "":
		return domain.ImpersonationSession{}, ErrTargetNotFound
	case req.TargetUserID == req.AdminID:
		return domain.ImpersonationSession{}, ErrInvalidTarget
	case req.Reason == "":
		return domain.ImpersonationSession{}, ErrReasonRequired
	case len(req.Reason) > maxReasonLength:
		return domain.ImpersonationSession{}, ErrReasonTooLong
	}

	if err := s.verifyStepUp(ctx, req.AdminID, req.OTP); err != nil {
		s.Metrics.ImpersonationEvent(metrics.EventDenied)
		return domain.ImpersonationSession{}, err
	}

	target, err := s.resolveUser(ctx, req.TargetUserID)
	if err != nil {
		return domain.ImpersonationSession{}, err
	}
	if target.IsAdmin() {
		return domain.ImpersonationSession{}, ErrInvalidTarget
	}

	// An expired session that housekeeping has not reached yet still holds
	// the one-per-admin slot.
	if _, err := s.ExpireSessions(ctx); err != nil {
		slogx.FromContext(ctx).Warn("failed to sweep expired impersonation sessions", "error", err)
	}

	now := clock(s.Now)
	sess := domain.ImpersonationSession{
		ID:             idx.NewAt(now),
		AdminID:        req.AdminID,
		TargetUserID:   target.ID,
		OrganizationID: target.OrganizationID,
		Reason:         req.Reason,
		CreatedAt:      now,
	}
	if s.TTL > 0 {
		exp := now.Add(s.TTL)
		sess.ExpiresAt = &exp
	}

	if err := s.Sessions.CreateSession(ctx, sess); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.Metrics.ImpersonationEvent(metrics.EventConflict)
			return domain.ImpersonationSession{}, ErrImpersonationActive
		}
		return domain.ImpersonationSession{}, fmt.Errorf("failed to create impersonation session: %w", err)
	}

	meta := map[string]string{
		"session_id":      sess.ID.String(),
		"organization_id": sess.OrganizationID,
		"reason":          sess.Reason,
	}
	if sess.ExpiresAt != nil {
		meta["expires_at"] = sess.ExpiresAt.Format(time.RFC3339)
	}
	s.Metrics.ImpersonationEvent(metrics.EventStart)
	s.Audit.Record(ctx, req.AdminID, domain.AuditImpersonationStart, sess.TargetUserID, meta)
	slogx.FromContext(ctx).Info("impersonation started",
		"admin_id", req.AdminID,
		"target_user_id", sess.TargetUserID,
		"organization_id", sess.OrganizationID,
		"session_id", sess.ID.String(),
	)

	return sess, nil
}

// ExpireSessions ends every session past its expiry, auditing each one, and
// refreshes the active sessions gauge.
func (s *ImpersonationService) ExpireSessions(ctx context.Context) (int, error) {
	now := clock(s.Now)
	ended, err := s.Sessions.EndExpiredSessions(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to end expired sessions: %w", err)
	}

	for _, sess := range ended {
		s.Audit.Record(ctx, sess.AdminID, domain.AuditImpersonationExpire, sess.TargetUserID, map[string]string{
			"session_id": sess.ID.String(),
		})
	}
	s.Metrics.ImpersonationEvents(metrics.EventExpire, len(ended))

	if n, err := s.Sessions.CountActiveSessions(ctx, now); err == nil {
		s.Metrics.SetActiveImpersonations(n)
	}

	return len(ended), nil
}

// verifyStepUp requires a valid TOTP code from administrators that have
// enrolled one. Administrators without a local record have nothing enrolled.
func (s *ImpersonationService) verifyStepUp(ctx context.Context, adminID, code string) error {
	admin, err := s.Store.Users().GetUserByID(ctx, adminID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load administrator: %w", err)
	}
	if admin.MFASecret == nil || *admin.MFASecret == "" {
		return nil
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return ErrOTPRequired
	}
	if !totp.Validate(code, *admin.MFASecret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

// resolveUser looks in the local store first, then the directory. Users
// found in the directory are mirrored locally.
func (s *ImpersonationService) resolveUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	if s.Directory == nil {
		return domain.User{}, ErrTargetNotFound
	}

	u, err = s.Directory.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, ErrTargetNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = clock(s.Now)
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if err := s.Store.Users().UpsertUser(ctx, u); err != nil {
		slogx.FromContext(ctx).Warn("failed to mirror directory user", "user_id", userID, "error", err)
	}
	return u, nil
}
