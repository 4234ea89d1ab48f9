package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/pkg/idx"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, admin_id, target_user_id, organization_id, reason, created_at, expires_at, ended_at, end_reason`

type impersonationSessionsRepo struct {
	q querier
}

func scanSession(row pgx.Row) (domain.ImpersonationSession, error) {
	var (
		s         domain.ImpersonationSession
		id        string
		endReason *string
	)
	err := row.Scan(&id, &s.AdminID, &s.TargetUserID, &s.OrganizationID, &s.Reason,
		&s.CreatedAt, &s.ExpiresAt, &s.EndedAt, &endReason)
	if err != nil {
		return domain.ImpersonationSession{}, err
	}
	s.ID = idx.ID(id)
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = utcPtr(s.ExpiresAt)
	s.EndedAt = utcPtr(s.EndedAt)
	s.EndReason = domain.EndReason(derefString(endReason))
	return s, nil
}

func (r *impersonationSessionsRepo) CreateSession(ctx context.Context, s domain.ImpersonationSession) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO impersonation_sessions (id, admin_id, target_user_id, organization_id, reason, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID.String(), s.AdminID, s.TargetUserID, s.OrganizationID, s.Reason, s.CreatedAt.UTC(), utcPtr(s.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *impersonationSessionsRepo) GetActiveSession(
	ctx context.Context,
	adminID string,
	now time.Time,
) (domain.ImpersonationSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM impersonation_sessions
		WHERE admin_id = $1 AND ended_at IS NULL AND (expires_at IS NULL OR expires_at > $2)`,
		adminID, now.UTC(),
	))
	return s, mapNotFound(err)
}

func (r *impersonationSessionsRepo) EndSession(
	ctx context.Context,
	adminID string,
	reason domain.EndReason,
	at time.Time,
) (domain.ImpersonationSession, error) {
	// The row lock taken by UPDATE makes a concurrent caller re-check
	// ended_at and match nothing. Expired rows are left to EndExpiredSessions.
	s, err := scanSession(r.q.QueryRow(ctx, `
		UPDATE impersonation_sessions
		SET ended_at = $1, end_reason = $2
		WHERE admin_id = $3 AND ended_at IS NULL
		  AND (expires_at IS NULL OR expires_at > $1)
		RETURNING `+sessionColumns,
		at.UTC(), string(reason), adminID,
	))
	return s, mapNotFound(err)
}

func (r *impersonationSessionsRepo) EndExpiredSessions(ctx context.Context, now time.Time) ([]domain.ImpersonationSession, error) {
	rows, err := r.q.Query(ctx, `
		UPDATE impersonation_sessions
		SET ended_at = $1, end_reason = 'expired'
		WHERE ended_at IS NULL AND expires_at IS NOT NULL AND expires_at <= $1
		RETURNING `+sessionColumns,
		now.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ImpersonationSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *impersonationSessionsRepo) CountActiveSessions(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM impersonation_sessions
		WHERE ended_at IS NULL AND (expires_at IS NULL OR expires_at > $1)`,
		now.UTC(),
	).Scan(&n)
	return n, err
}
