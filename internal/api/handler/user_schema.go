package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type bootstrapRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Users ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin caller"`
	// Permissions, when present, replaces the role's default set entirely.
	Permissions []string `json:"permissions,omitempty"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// capabilitiesResponse mirrors domain.Capabilities for the UI.
type capabilitiesResponse struct {
	IsSuperUser      bool `json:"is_super_user"`
	CanManageUsers   bool `json:"can_manage_users"`
	CanAccessSystem  bool `json:"can_access_system"`
	CanExportData    bool `json:"can_export_data"`
	CanViewAuditLogs bool `json:"can_view_audit_logs"`
}

// userResponse is the transport view of a user. The permission strings are
// a stable contract with the frontend, which keys UI behaviour off them.
type userResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Permissions  []string             `json:"permissions"`
	Active       bool                 `json:"active"`
	CreatedBy    string               `json:"created_by,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	Capabilities capabilitiesResponse `json:"capabilities"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

// --- Audit ---

type auditEventResponse struct {
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	TargetID  string    `json:"target_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type listAuditResponse struct {
	Data []auditEventResponse `json:"data"`
}
