package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

const (
	defaultLeadLimit = 50
	maxLeadLimit     = 200
)

// LeadService implements lead use cases with caller isolation: a caller only
// ever queries leads assigned to or created by itself, admins and supers see
// everything subject to the same filters.
type LeadService struct {
	repo ports.LeadRepository
	log  zerolog.Logger
}

func NewLeadService(repo ports.LeadRepository, log zerolog.Logger) *LeadService {
	return &LeadService{repo: repo, log: log}
}

func (s *LeadService) Create(ctx context.Context, actor ports.Actor, input ports.CreateLeadInput) (*domain.Lead, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidCredentials
	}

	priority := domain.LeadPriority(input.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	assignedTo := input.AssignedTo
	if assignedTo == "" || actor.Role == domain.RoleCaller {
		// Callers cannot assign leads to anyone else.
		assignedTo = actor.ID
	}

	now := time.Now().UTC()
	lead := &domain.Lead{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Destination: input.Destination,
		Status:      domain.LeadStatusNew,
		Priority:    priority,
		AssignedTo:  assignedTo,
		CreatedBy:   actor.ID,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, lead)
	if err != nil {
		s.log.Error().Err(err).Str("actor_id", actor.ID).Msg("failed to create lead")
		return nil, err
	}

	s.log.Info().Str("lead_id", created.ID).Str("actor_id", actor.ID).Msg("lead created")
	return created, nil
}

func (s *LeadService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(actor, lead) {
		return nil, domain.ErrForbidden
	}
	return lead, nil
}

// List returns a filtered page of leads. Limit defaults to 50 and is capped
// at 200; negative limit or offset values fall back to the defaults.
func (s *LeadService) List(ctx context.Context, actor ports.Actor, input ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLeadLimit
	}
	if limit > maxLeadLimit {
		limit = maxLeadLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	filter := ports.ListLeadsFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Search:   input.Search,
		Limit:    limit,
		Offset:   offset,
	}
	if actor.Role == domain.RoleCaller {
		filter.ActorID = actor.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListLeadsResult{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *LeadService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status string) (*domain.Lead, error) {
	next := domain.LeadStatus(status)
	if !domain.ValidLeadStatus(next) {
		return nil, domain.ErrInvalidLeadStatus
	}

	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(actor, lead) {
		return nil, domain.ErrForbidden
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	lead.Status = next
	lead.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("lead_id", id).Str("status", status).Str("actor_id", actor.ID).Msg("lead status updated")
	return lead, nil
}

// visibleTo applies the isolation boundary: admins and supers see every
// lead, callers only their own.
func visibleTo(actor ports.Actor, lead *domain.Lead) bool {
	if actor.Role != domain.RoleCaller {
		return true
	}
	return lead.AssignedTo == actor.ID || lead.CreatedBy == actor.ID
}
