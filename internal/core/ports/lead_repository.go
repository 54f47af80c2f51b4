package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// ListLeadsFilter carries all query parameters for listing leads.
// ActorID is set by the service layer for caller isolation; when non-empty
// the repository only returns leads assigned to or created by that actor.
type ListLeadsFilter struct {
	ActorID  string // empty = no isolation (admin/super); non-empty = caller scope
	Status   string // optional: filter by funnel stage
	Priority string // optional: filter by priority
	Search   string // optional: case-insensitive match on name, email, destination
	Limit    int    // page size, already defaulted and capped by the service
	Offset   int    // rows to skip
}

// LeadRepository defines persistence operations for leads.
type LeadRepository interface {
	Insert(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	// List returns a page of leads matching filter plus the total count
	// before pagination, ordered by creation.
	List(ctx context.Context, filter ListLeadsFilter) ([]*domain.Lead, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error
}
