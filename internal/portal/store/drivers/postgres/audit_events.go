package postgres

import (
	"context"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/pkg/idx"
)

const defaultAuditLimit = 100

type auditEventsRepo struct {
	q querier
}

func (r *auditEventsRepo) AppendAuditEvent(ctx context.Context, e domain.AuditEvent) error {
	meta := e.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_events (id, actor_id, action, subject_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID.String(), e.ActorID, string(e.Action), e.SubjectID, meta, e.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *auditEventsRepo) ListAuditEvents(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEvent, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, actor_id, action, subject_id, metadata, created_at
		FROM audit_events
		WHERE ($1 = '' OR actor_id = $1)
		  AND ($2 = '' OR action = $2)
		  AND ($3 = '' OR id < $3)
		ORDER BY id DESC
		LIMIT $4`,
		f.ActorID, string(f.Action), f.Before.String(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEvent
	for rows.Next() {
		var (
			e      domain.AuditEvent
			id     string
			action string
		)
		if err := rows.Scan(&id, &e.ActorID, &action, &e.SubjectID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ID = idx.ID(id)
		e.Action = domain.AuditAction(action)
		e.CreatedAt = e.CreatedAt.UTC()
		if e.Metadata == nil {
			e.Metadata = map[string]string{}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
