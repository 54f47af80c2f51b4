package domain

// Access decisions are pure functions of already-loaded user records. They
// perform no I/O and own no state; callers load the actor and target first
// and translate a false result into ErrForbidden.

// CanCreateUsers reports whether an actor with the given role may create
// accounts at all.
func CanCreateUsers(actor Role) bool {
	return actor == RoleSuper || actor == RoleAdmin
}

// CanCreateRole reports whether an actor may create an account with the
// requested role. Super creates admins and callers; admin creates callers
// only; caller creates nobody.
func CanCreateRole(actor, requested Role) bool {
	switch actor {
	case RoleSuper:
		return requested == RoleAdmin || requested == RoleCaller
	case RoleAdmin:
		return requested == RoleCaller
	default:
		return false
	}
}

// CanManageUser reports whether actor may view, modify, or delete target.
// Super manages every account. Admin manages only caller accounts it
// created itself. Caller manages nobody.
func CanManageUser(actor, target *User) bool {
	if actor == nil || target == nil {
		return false
	}
	switch actor.Role {
	case RoleSuper:
		return true
	case RoleAdmin:
		return target.Role == RoleCaller && target.CreatedBy == actor.ID
	default:
		return false
	}
}

// CanDeleteUser applies the destructive-operation rule: an actor can never
// delete its own account, independent of role. All other deletes fall
// through to CanManageUser.
func CanDeleteUser(actor, target *User) bool {
	if actor == nil || target == nil || actor.ID == target.ID {
		return false
	}
	return CanManageUser(actor, target)
}

// CanChangePassword allows every actor to set its own password; changing
// anyone else's requires management rights over them.
func CanChangePassword(actor, target *User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.ID == target.ID {
		return true
	}
	return CanManageUser(actor, target)
}

// DefaultPermissions returns the capability tags a role is granted when no
// explicit set is supplied at creation time. An explicit set replaces this
// entirely; the two are never merged.
func DefaultPermissions(role Role) []Permission {
	switch role {
	case RoleSuper:
		return []Permission{
			PermAll, PermSuperAdmin, PermSystemConfig, PermUserManagement,
			PermDataExport, PermAPIAccess, PermAuditLogs,
		}
	case RoleAdmin:
		return []Permission{
			PermLeads, PermQuotes, PermBookings, PermReports, PermUserManagement,
		}
	case RoleCaller:
		return []Permission{PermLeads, PermQuotes, PermBookings}
	default:
		return nil
	}
}

// Capabilities are presentation-layer flags derived deterministically from
// role. They are computed on demand and never stored.
type Capabilities struct {
	IsSuperUser      bool `json:"is_super_user"`
	CanManageUsers   bool `json:"can_manage_users"`
	CanAccessSystem  bool `json:"can_access_system"`
	CanExportData    bool `json:"can_export_data"`
	CanViewAuditLogs bool `json:"can_view_audit_logs"`
}

// CapabilitiesOf derives the capability flags for a role.
func CapabilitiesOf(role Role) Capabilities {
	elevated := role == RoleSuper || role == RoleAdmin
	return Capabilities{
		IsSuperUser:      role == RoleSuper,
		CanManageUsers:   elevated,
		CanAccessSystem:  elevated,
		CanExportData:    elevated,
		CanViewAuditLogs: role == RoleSuper,
	}
}
