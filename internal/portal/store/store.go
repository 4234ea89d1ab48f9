package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose sub-repositories so that transactions
// cannot be nested by accident.
type Store interface {
	Users() Users
	Organizations() Organizations
	ImpersonationSessions() ImpersonationSessions
	AuditEvents() AuditEvents
	OAuthStates() OAuthStates
	CalendarConnections() CalendarConnections

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// TableCounts returns the row count of every table, for inspection.
	TableCounts(ctx context.Context) (map[string]int64, error)

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpsertUser inserts u or updates its profile fields. The MFA secret is
	// left untouched on update.
	UpsertUser(ctx context.Context, u domain.User) error

	// UpdateMFASecret sets (or with nil clears) the TOTP secret.
	UpdateMFASecret(ctx context.Context, userID string, secret *string) error

	ListUsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error)
}

type Organizations interface {
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)
	UpsertOrganization(ctx context.Context, o domain.Organization) error
}

// ImpersonationSessions persists impersonation sessions. Implementations
// guarantee at most one un-ended session per administrator. Redis can back
// this repository on its own, so it is also used outside of Store.
type ImpersonationSessions interface {
	// CreateSession inserts s. It returns ErrAlreadyExists when the admin
	// already has an un-ended session.
	CreateSession(ctx context.Context, s domain.ImpersonationSession) error

	// GetActiveSession returns the admin's session that is neither ended nor
	// expired at now, or ErrNotFound.
	GetActiveSession(ctx context.Context, adminID string, now time.Time) (domain.ImpersonationSession, error)

	// EndSession ends the admin's session active at `at` and returns it, or
	// ErrNotFound when there is none. Expired sessions are left for
	// EndExpiredSessions. Only one of several concurrent callers observes the
	// session.
	EndSession(ctx context.Context, adminID string, reason domain.EndReason, at time.Time) (domain.ImpersonationSession, error)

	// EndExpiredSessions ends every un-ended session whose expiry is at or
	// before now and returns them.
	EndExpiredSessions(ctx context.Context, now time.Time) ([]domain.ImpersonationSession, error)

	// CountActiveSessions counts sessions active at now.
	CountActiveSessions(ctx context.Context, now time.Time) (int64, error)
}

type AuditEvents interface {
	AppendAuditEvent(ctx context.Context, e domain.AuditEvent) error

	// ListAuditEvents returns events newest first.
	ListAuditEvents(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEvent, error)
}

type OAuthStates interface {
	CreateOAuthState(ctx context.Context, s domain.OAuthState) error

	// ConsumeOAuthState deletes and returns the state if it has not expired
	// at now. Missing or expired states yield ErrNotFound.
	ConsumeOAuthState(ctx context.Context, stateHash string, now time.Time) (domain.OAuthState, error)

	DeleteExpiredOAuthStates(ctx context.Context, now time.Time) (int64, error)
}

type CalendarConnections interface {
	UpsertCalendarConnection(ctx context.Context, c domain.CalendarConnection) error
	GetCalendarConnection(ctx context.Context, userID, provider string) (domain.CalendarConnection, error)
	DeleteCalendarConnection(ctx context.Context, userID, provider string) error
}
