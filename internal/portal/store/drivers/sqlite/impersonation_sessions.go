package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
	"github.com/aussiebroadwan/spotter/pkg/idx"
)

type impersonationSessionsRepo struct {
	q *gen.Queries
}

func (r *impersonationSessionsRepo) CreateSession(ctx context.Context, s domain.ImpersonationSession) error {
	err := r.q.CreateImpersonationSession(ctx, gen.CreateImpersonationSessionParams{
		ID:             s.ID.String(),
		AdminID:        s.AdminID,
		TargetUserID:   s.TargetUserID,
		OrganizationID: s.OrganizationID,
		Reason:         s.Reason,
		CreatedAt:      toMillis(s.CreatedAt),
		ExpiresAt:      toNullMillis(s.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *impersonationSessionsRepo) GetActiveSession(
	ctx context.Context,
	adminID string,
	now time.Time,
) (domain.ImpersonationSession, error) {
	row, err := r.q.GetActiveImpersonationSession(ctx, gen.GetActiveImpersonationSessionParams{
		AdminID: adminID,
		Now:     nowMillis(now),
	})
	if err != nil {
		return domain.ImpersonationSession{}, mapNotFound(err)
	}
	return mapImpersonationSession(row), nil
}

func (r *impersonationSessionsRepo) EndSession(
	ctx context.Context,
	adminID string,
	reason domain.EndReason,
	at time.Time,
) (domain.ImpersonationSession, error) {
	row, err := r.q.EndOpenImpersonationSession(ctx, gen.EndOpenImpersonationSessionParams{
		EndedAt:   nowMillis(at),
		EndReason: toNullString(string(reason)),
		AdminID:   adminID,
	})
	if err != nil {
		return domain.ImpersonationSession{}, mapNotFound(err)
	}
	return mapImpersonationSession(row), nil
}

func (r *impersonationSessionsRepo) EndExpiredSessions(ctx context.Context, now time.Time) ([]domain.ImpersonationSession, error) {
	rows, err := r.q.EndExpiredImpersonationSessions(ctx, nowMillis(now))
	if err != nil {
		return nil, err
	}
	out := make([]domain.ImpersonationSession, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapImpersonationSession(row))
	}
	return out, nil
}

func (r *impersonationSessionsRepo) CountActiveSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.CountActiveImpersonationSessions(ctx, nowMillis(now))
}

func mapImpersonationSession(row gen.ImpersonationSession) domain.ImpersonationSession {
	return domain.ImpersonationSession{
		ID:             idx.ID(row.ID),
		AdminID:        row.AdminID,
		TargetUserID:   row.TargetUserID,
		OrganizationID: row.OrganizationID,
		Reason:         row.Reason,
		CreatedAt:      fromMillis(row.CreatedAt),
		ExpiresAt:      fromNullMillis(row.ExpiresAt),
		EndedAt:        fromNullMillis(row.EndedAt),
		EndReason:      domain.EndReason(fromNullString(row.EndReason)),
	}
}
