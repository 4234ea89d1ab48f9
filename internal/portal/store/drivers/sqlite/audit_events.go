package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
	"github.com/aussiebroadwan/spotter/pkg/idx"
)

const defaultAuditLimit = 100

type auditEventsRepo struct {
	q *gen.Queries
}

func (r *auditEventsRepo) AppendAuditEvent(ctx context.Context, e domain.AuditEvent) error {
	meta, err := encodeMetadata(e.Metadata)
	if err != nil {
		return err
	}
	err = r.q.CreateAuditEvent(ctx, gen.CreateAuditEventParams{
		ID:        e.ID.String(),
		ActorID:   e.ActorID,
		Action:    string(e.Action),
		SubjectID: e.SubjectID,
		Metadata:  meta,
		CreatedAt: toMillis(e.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *auditEventsRepo) ListAuditEvents(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEvent, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	rows, err := r.q.ListAuditEvents(ctx, gen.ListAuditEventsParams{
		ActorID: f.ActorID,
		Action:  string(f.Action),
		Before:  f.Before.String(),
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.AuditEvent, 0, len(rows))
	for _, row := range rows {
		meta, err := decodeMetadata(row.Metadata)
		if err != nil {
			return nil, fmt.Errorf("audit event %s: %w", row.ID, err)
		}
		out = append(out, domain.AuditEvent{
			ID:        idx.ID(row.ID),
			ActorID:   row.ActorID,
			Action:    domain.AuditAction(row.Action),
			SubjectID: row.SubjectID,
			Metadata:  meta,
			CreatedAt: fromMillis(row.CreatedAt),
		})
	}
	return out, nil
}

func encodeMetadata(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMetadata(s string) (map[string]string, error) {
	m := map[string]string{}
	if s == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}
