package handler

import (
	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

func toCreateLeadInput(req createLeadRequest) ports.CreateLeadInput {
	return ports.CreateLeadInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Destination: req.Destination,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		Notes:       req.Notes,
	}
}

func toLeadResponse(l *domain.Lead) leadResponse {
	return leadResponse{
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		Phone:       l.Phone,
		Destination: l.Destination,
		Status:      string(l.Status),
		Priority:    string(l.Priority),
		AssignedTo:  l.AssignedTo,
		CreatedBy:   l.CreatedBy,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt.UTC(),
		UpdatedAt:   l.UpdatedAt.UTC(),
	}
}

func toListLeadsResponse(r *ports.ListLeadsResult) listLeadsResponse {
	items := make([]leadResponse, len(r.Items))
	for i, l := range r.Items {
		items[i] = toLeadResponse(l)
	}
	return listLeadsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:  r.Total,
			Limit:  r.Limit,
			Offset: r.Offset,
		},
	}
}
