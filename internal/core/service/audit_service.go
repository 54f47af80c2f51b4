package service

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

const defaultAuditLimit = 100

// AuditService exposes the audit trail read side. Writes go through the
// async recorder, not through this service.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns the newest audit events. Only roles with the audit_logs
// capability (super) may read the trail.
func (s *AuditService) List(ctx context.Context, actorRole domain.Role, limit int) ([]*domain.AuditEvent, error) {
	if !domain.CapabilitiesOf(actorRole).CanViewAuditLogs {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
