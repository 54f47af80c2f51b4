package domain

import "time"

// AuditAction names a recorded user-management action.
type AuditAction string

const (
	AuditUserCreated     AuditAction = "user_created"
	AuditUserDeleted     AuditAction = "user_deleted"
	AuditUserDeactivated AuditAction = "user_deactivated"
	AuditPasswordChanged AuditAction = "password_changed"
	AuditAccessDenied    AuditAction = "access_denied"
	AuditLogin           AuditAction = "login"
)

// AuditEvent records a single user-management action or authorization denial.
type AuditEvent struct {
	ActorID   string      `json:"actor_id"`
	Action    AuditAction `json:"action"`
	TargetID  string      `json:"target_id,omitempty"`
	Detail    string      `json:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
