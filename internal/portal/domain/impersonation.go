package domain

import (
	"time"

	"github.com/aussiebroadwan/spotter/pkg/idx"
)

type EndReason string

const (
	EndReasonNone    EndReason = ""
	EndReasonStopped EndReason = "stopped"
	EndReasonExpired EndReason = "expired"
)

// ImpersonationSession records an administrator acting as a tenant user.
// At most one session per administrator may be un-ended at a time.
type ImpersonationSession struct {
	ID             idx.ID
	AdminID        string
	TargetUserID   string
	OrganizationID string
	Reason         string
	CreatedAt      time.Time
	ExpiresAt      *time.Time // nil means no time limit
	EndedAt        *time.Time
	EndReason      EndReason
}

// Active reports whether the session is neither ended nor expired at now.
func (s ImpersonationSession) Active(now time.Time) bool {
	if s.EndedAt != nil {
		return false
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}

// ImpersonationStatus is the result of a status check. It has no error
// path: a nil Session means no active impersonation.
type ImpersonationStatus struct {
	Session *ImpersonationSession
}

// Active reports whether a session is present.
func (s ImpersonationStatus) Active() bool { return s.Session != nil }

// StopResult is the result of a successful stop. Ended is nil when there
// was nothing to stop.
type StopResult struct {
	Ended *ImpersonationSession
}
