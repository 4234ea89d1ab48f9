package domain

import (
	"time"

	"github.com/aussiebroadwan/spotter/pkg/idx"
)

type AuditAction string

const (
	AuditImpersonationStart  AuditAction = "impersonation.start"
	AuditImpersonationStop   AuditAction = "impersonation.stop"
	AuditImpersonationExpire AuditAction = "impersonation.expire"
	AuditCalendarConnect     AuditAction = "calendar.connect"
)

// AuditEvent is an append-only record of a privileged action.
type AuditEvent struct {
	ID        idx.ID
	ActorID   string
	Action    AuditAction
	SubjectID string
	Metadata  map[string]string
	CreatedAt time.Time
}

// AuditFilter narrows an audit listing. Zero fields match everything.
type AuditFilter struct {
	ActorID string
	Action  AuditAction
	Before  idx.ID // exclusive cursor, newest first
	Limit   int
}
