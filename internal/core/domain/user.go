package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the fixed three-tier hierarchy: super > admin > caller.
// Roles never change after creation; there is no promote/demote operation.
type Role string

const (
	RoleSuper  Role = "super"
	RoleAdmin  Role = "admin"
	RoleCaller Role = "caller"
)

// ValidRole reports whether r is one of the three known tiers.
func ValidRole(r Role) bool {
	return r == RoleSuper || r == RoleAdmin || r == RoleCaller
}

// Permission is a capability tag granted to a user. The set of tags is closed;
// anything outside this enumeration is rejected at the boundary. External
// clients key UI behaviour off the exact strings, so they must not change.
type Permission string

const (
	PermAll            Permission = "all"
	PermSuperAdmin     Permission = "super_admin"
	PermSystemConfig   Permission = "system_config"
	PermUserManagement Permission = "user_management"
	PermDataExport     Permission = "data_export"
	PermAPIAccess      Permission = "api_access"
	PermAuditLogs      Permission = "audit_logs"
	PermLeads          Permission = "leads"
	PermQuotes         Permission = "quotes"
	PermBookings       Permission = "bookings"
	PermReports        Permission = "reports"
)

var knownPermissions = map[Permission]struct{}{
	PermAll: {}, PermSuperAdmin: {}, PermSystemConfig: {}, PermUserManagement: {},
	PermDataExport: {}, PermAPIAccess: {}, PermAuditLogs: {},
	PermLeads: {}, PermQuotes: {}, PermBookings: {}, PermReports: {},
}

// ParsePermissions validates a free-form string slice against the closed tag
// enumeration. Returns an error wrapping ErrUnknownPermission on the first
// unrecognised tag.
func ParsePermissions(tags []string) ([]Permission, error) {
	perms := make([]Permission, 0, len(tags))
	for _, t := range tags {
		p := Permission(t)
		if _, ok := knownPermissions[p]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, t)
		}
		perms = append(perms, p)
	}
	return perms, nil
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many failed login attempts")
var ErrForbidden = errors.New("access forbidden")
var ErrUnknownPermission = errors.New("unknown permission tag")

// User models an account in the agency. CreatedBy is empty for super users and
// otherwise refers to the super/admin account that created this one.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	Permissions  []Permission `json:"permissions"`
	Active       bool         `json:"active"`
	CreatedBy    string       `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
