package domain

import (
	"sort"
	"testing"
)

func user(id string, role Role, createdBy string) *User {
	return &User{ID: id, Role: role, CreatedBy: createdBy, Active: true}
}

func TestCanCreateUsers(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleSuper, true},
		{RoleAdmin, true},
		{RoleCaller, false},
	}
	for _, tc := range cases {
		if got := CanCreateUsers(tc.role); got != tc.want {
			t.Errorf("CanCreateUsers(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanCreateRole(t *testing.T) {
	cases := []struct {
		actor     Role
		requested Role
		want      bool
	}{
		{RoleSuper, RoleAdmin, true},
		{RoleSuper, RoleCaller, true},
		{RoleSuper, RoleSuper, false},
		{RoleAdmin, RoleCaller, true},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleSuper, false},
		{RoleCaller, RoleCaller, false},
		{RoleCaller, RoleAdmin, false},
		{RoleCaller, RoleSuper, false},
	}
	for _, tc := range cases {
		if got := CanCreateRole(tc.actor, tc.requested); got != tc.want {
			t.Errorf("CanCreateRole(%s, %s) = %v, want %v", tc.actor, tc.requested, got, tc.want)
		}
	}
}

func TestCanManageUser(t *testing.T) {
	super := user("1", RoleSuper, "")
	admin := user("2", RoleAdmin, "1")
	ownCaller := user("3", RoleCaller, "2")
	otherCaller := user("4", RoleCaller, "9")
	otherAdmin := user("5", RoleAdmin, "1")

	cases := []struct {
		name   string
		actor  *User
		target *User
		want   bool
	}{
		{"super manages admin", super, admin, true},
		{"super manages caller", super, ownCaller, true},
		{"super manages itself", super, super, true},
		{"admin manages own caller", admin, ownCaller, true},
		{"admin cannot manage foreign caller", admin, otherCaller, false},
		{"admin cannot manage another admin", admin, otherAdmin, false},
		{"admin cannot manage super", admin, super, false},
		{"caller manages nobody", ownCaller, otherCaller, false},
		{"caller cannot manage admin", ownCaller, admin, false},
		{"caller cannot manage super", ownCaller, super, false},
		{"nil actor", nil, ownCaller, false},
		{"nil target", admin, nil, false},
	}
	for _, tc := range cases {
		if got := CanManageUser(tc.actor, tc.target); got != tc.want {
			t.Errorf("%s: CanManageUser = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanDeleteUser_SelfDeleteAlwaysDenied(t *testing.T) {
	for _, role := range []Role{RoleSuper, RoleAdmin, RoleCaller} {
		u := user("7", role, "")
		if CanDeleteUser(u, u) {
			t.Errorf("self-delete allowed for role %s", role)
		}
	}
}

func TestCanDeleteUser_DelegatesToManagement(t *testing.T) {
	super := user("1", RoleSuper, "")
	admin := user("2", RoleAdmin, "1")
	caller := user("3", RoleCaller, "2")

	if !CanDeleteUser(super, admin) {
		t.Error("super should delete admin")
	}
	if !CanDeleteUser(admin, caller) {
		t.Error("admin should delete own caller")
	}
	if CanDeleteUser(caller, admin) {
		t.Error("caller should not delete anyone")
	}
}

func TestCanChangePassword(t *testing.T) {
	super := user("1", RoleSuper, "")
	admin := user("2", RoleAdmin, "1")
	caller := user("3", RoleCaller, "2")

	// Own password is always allowed, even for callers.
	if !CanChangePassword(caller, caller) {
		t.Error("caller should change own password")
	}
	if !CanChangePassword(admin, caller) {
		t.Error("admin should change own caller's password")
	}
	if CanChangePassword(caller, admin) {
		t.Error("caller should not change admin's password")
	}
	if !CanChangePassword(super, caller) {
		t.Error("super should change anyone's password")
	}
}

func TestDefaultPermissions(t *testing.T) {
	cases := []struct {
		role Role
		want []Permission
	}{
		{RoleSuper, []Permission{PermAll, PermSuperAdmin, PermSystemConfig, PermUserManagement, PermDataExport, PermAPIAccess, PermAuditLogs}},
		{RoleAdmin, []Permission{PermLeads, PermQuotes, PermBookings, PermReports, PermUserManagement}},
		{RoleCaller, []Permission{PermLeads, PermQuotes, PermBookings}},
	}
	for _, tc := range cases {
		got := DefaultPermissions(tc.role)
		if !samePermissionSet(got, tc.want) {
			t.Errorf("DefaultPermissions(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}

	if DefaultPermissions(Role("ghost")) != nil {
		t.Error("unknown role should have no default permissions")
	}
}

func TestCapabilitiesOf(t *testing.T) {
	cases := []struct {
		role Role
		want Capabilities
	}{
		{RoleSuper, Capabilities{IsSuperUser: true, CanManageUsers: true, CanAccessSystem: true, CanExportData: true, CanViewAuditLogs: true}},
		{RoleAdmin, Capabilities{CanManageUsers: true, CanAccessSystem: true, CanExportData: true}},
		{RoleCaller, Capabilities{}},
	}
	for _, tc := range cases {
		if got := CapabilitiesOf(tc.role); got != tc.want {
			t.Errorf("CapabilitiesOf(%s) = %+v, want %+v", tc.role, got, tc.want)
		}
	}
}

func TestParsePermissions(t *testing.T) {
	perms, err := ParsePermissions([]string{"leads", "quotes", "user_management"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(perms) != 3 || perms[0] != PermLeads || perms[2] != PermUserManagement {
		t.Fatalf("unexpected permissions: %v", perms)
	}

	if _, err := ParsePermissions([]string{"leads", "launch_missiles"}); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func samePermissionSet(a, b []Permission) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	for i := range a {
		as[i] = string(a[i])
		bs[i] = string(b[i])
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
