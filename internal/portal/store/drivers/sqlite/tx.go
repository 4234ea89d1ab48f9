package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the DB stays open.
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op inside a transaction.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) TableCounts(ctx context.Context) (map[string]int64, error) {
	return tableCounts(ctx, t.q)
}

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.q} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.q} }
func (t *txStore) ImpersonationSessions() store.ImpersonationSessions {
	return &impersonationSessionsRepo{q: t.q}
}
func (t *txStore) AuditEvents() store.AuditEvents { return &auditEventsRepo{q: t.q} }
func (t *txStore) OAuthStates() store.OAuthStates { return &oauthStatesRepo{q: t.q} }
func (t *txStore) CalendarConnections() store.CalendarConnections {
	return &calendarConnectionsRepo{q: t.q}
}
