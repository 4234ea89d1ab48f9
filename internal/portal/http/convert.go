package http

import (
	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
)

func toSDKSession(s *domain.ImpersonationSession) *portalsdk.ImpersonationSession {
	if s == nil {
		return nil
	}
	return &portalsdk.ImpersonationSession{
		ID:             s.ID.String(),
		AdminID:        s.AdminID,
		TargetUserID:   s.TargetUserID,
		OrganizationID: s.OrganizationID,
		Reason:         s.Reason,
		CreatedAt:      s.CreatedAt,
		ExpiresAt:      s.ExpiresAt,
	}
}

func toSDKAuditEvent(e domain.AuditEvent) portalsdk.AuditEvent {
	return portalsdk.AuditEvent{
		ID:        e.ID.String(),
		ActorID:   e.ActorID,
		Action:    string(e.Action),
		SubjectID: e.SubjectID,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}
