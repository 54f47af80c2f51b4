package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// AuditRepository persists audit events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
	// ListRecent returns the newest events first, at most limit entries.
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEvent, error)
}
