package handler

import "time"

type createLeadRequest struct {
	Name        string `json:"name"        validate:"required"`
	Email       string `json:"email"       validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Destination string `json:"destination"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	AssignedTo  string `json:"assigned_to"`
	Notes       string `json:"notes"`
}

type updateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted quoted won lost"`
}

type leadResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	AssignedTo  string    `json:"assigned_to"`
	CreatedBy   string    `json:"created_by"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type listLeadsResponse struct {
	Data       []leadResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
