package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// Actor identifies the authenticated user for lead operations. Role drives
// the isolation rule; ID scopes caller queries.
type Actor struct {
	ID   string
	Role domain.Role
}

// CreateLeadInput carries the data for a new lead. AssignedTo defaults to
// the actor when empty.
type CreateLeadInput struct {
	Name        string
	Email       string
	Phone       string
	Destination string
	Priority    string
	AssignedTo  string
	Notes       string
}

// ListLeadsInput carries the filter parameters from the transport layer.
// All supplied filters are ANDed.
type ListLeadsInput struct {
	Status   string
	Priority string
	Search   string
	Limit    int
	Offset   int
}

// ListLeadsResult is returned by List.
type ListLeadsResult struct {
	Items  []*domain.Lead
	Total  int64
	Limit  int
	Offset int
}

// LeadService defines lead use cases with caller isolation applied.
type LeadService interface {
	Create(ctx context.Context, actor Actor, input CreateLeadInput) (*domain.Lead, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Lead, error)
	List(ctx context.Context, actor Actor, input ListLeadsInput) (*ListLeadsResult, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status string) (*domain.Lead, error)
}
