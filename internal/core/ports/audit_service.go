package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// AuditRecorder accepts events for asynchronous persistence. Record never
// blocks the caller beyond the recorder's channel buffer.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService exposes the audit trail to super users.
type AuditService interface {
	// List returns the most recent events. Requires the audit_logs
	// capability (super only).
	List(ctx context.Context, actorRole domain.Role, limit int) ([]*domain.AuditEvent, error)
}
