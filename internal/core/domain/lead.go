package domain

import (
	"errors"
	"time"
)

// LeadStatus represents where a lead sits in the sales funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQuoted    LeadStatus = "quoted"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// ValidLeadStatus reports whether s is a known funnel stage.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQuoted, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// LeadPriority is the follow-up urgency assigned to a lead.
type LeadPriority string

const (
	PriorityLow    LeadPriority = "low"
	PriorityMedium LeadPriority = "medium"
	PriorityHigh   LeadPriority = "high"
)

var ErrLeadNotFound = errors.New("lead not found")
var ErrInvalidLeadStatus = errors.New("invalid lead status")

// Lead is a prospective customer enquiry. AssignedTo and CreatedBy carry the
// user ids that drive caller isolation: a caller only ever sees leads where
// one of the two matches its own id.
type Lead struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Name        string       `json:"name" bson:"name"`
	Email       string       `json:"email" bson:"email"`
	Phone       string       `json:"phone" bson:"phone"`
	Destination string       `json:"destination" bson:"destination"`
	Status      LeadStatus   `json:"status" bson:"status"`
	Priority    LeadPriority `json:"priority" bson:"priority"`
	AssignedTo  string       `json:"assigned_to" bson:"assigned_to"`
	CreatedBy   string       `json:"created_by" bson:"created_by"`
	Notes       string       `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}
