package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the connection pool.
type Config struct {
	DSN             string
	MaxConns        int32         // Default: 10
	MaxConnLifetime time.Duration // Default: 30m
	MaxConnIdleTime time.Duration // Default: 5m
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	q    querier
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	pcfg.MaxConns = 10
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pcfg.MaxConnLifetime = 30 * time.Minute
	if cfg.MaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pcfg.MaxConnIdleTime = 5 * time.Minute
	if cfg.MaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &Store{pool: pool, q: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, ctx: ctx}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	return tableCounts(ctx, s.q)
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) Organizations() store.Organizations { return &organizationsRepo{q: s.q} }
func (s *Store) ImpersonationSessions() store.ImpersonationSessions {
	return &impersonationSessionsRepo{q: s.q}
}
func (s *Store) AuditEvents() store.AuditEvents { return &auditEventsRepo{q: s.q} }
func (s *Store) OAuthStates() store.OAuthStates { return &oauthStatesRepo{q: s.q} }
func (s *Store) CalendarConnections() store.CalendarConnections {
	return &calendarConnectionsRepo{q: s.q}
}

var countedTables = []string{
	"organizations",
	"users",
	"impersonation_sessions",
	"audit_events",
	"oauth_states",
	"calendar_connections",
}

func tableCounts(ctx context.Context, q querier) (map[string]int64, error) {
	out := make(map[string]int64, len(countedTables))
	for _, table := range countedTables {
		var n int64
		// Table names come from the fixed list above.
		if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

type txStore struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *txStore) Commit() error   { return t.tx.Commit(t.ctx) }
func (t *txStore) Rollback() error { return t.tx.Rollback(t.ctx) }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, pgx.ErrTxClosed }
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.ErrTxClosed
}

func (t *txStore) TableCounts(ctx context.Context) (map[string]int64, error) {
	return tableCounts(ctx, t.tx)
}

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.tx} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.tx} }
func (t *txStore) ImpersonationSessions() store.ImpersonationSessions {
	return &impersonationSessionsRepo{q: t.tx}
}
func (t *txStore) AuditEvents() store.AuditEvents { return &auditEventsRepo{q: t.tx} }
func (t *txStore) OAuthStates() store.OAuthStates { return &oauthStatesRepo{q: t.tx} }
func (t *txStore) CalendarConnections() store.CalendarConnections {
	return &calendarConnectionsRepo{q: t.tx}
}

const uniqueViolation = "23505"

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrAlreadyExists
	}
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
