package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/pkg/idx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditService struct {
	Store store.Store
	Now   func() time.Time
}

// Record appends an audit event. The action it describes has already
// happened, so a failed write is logged and otherwise ignored.
func (s *AuditService) Record(ctx context.Context, actorID string, action domain.AuditAction, subjectID string, meta map[string]string) {
	if s == nil {
		return
	}
	now := clock(s.Now)
	ev := domain.AuditEvent{
		ID:        idx.NewAt(now),
		ActorID:   actorID,
		Action:    action,
		SubjectID: subjectID,
		Metadata:  meta,
		CreatedAt: now,
	}
	if err := s.Store.AuditEvents().AppendAuditEvent(ctx, ev); err != nil {
		slogx.FromContext(ctx).Error("failed to write audit event",
			"action", action,
			"actor_id", actorID,
			"subject_id", subjectID,
			"error", err,
		)
	}
}

// List returns events newest first, at most AuditPageSize(f.Limit) of them.
func (s *AuditService) List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEvent, error) {
	f.Limit = AuditPageSize(f.Limit)
	return s.Store.AuditEvents().ListAuditEvents(ctx, f)
}

// AuditPageSize clamps a requested page size to [1, 200], defaulting to 50.
func AuditPageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultAuditLimit
	case limit > maxAuditLimit:
		return maxAuditLimit
	}
	return limit
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
