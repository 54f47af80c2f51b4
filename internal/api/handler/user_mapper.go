package handler

import (
	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

// --- Service result → HTTP response ---

func toUserResponse(v *ports.UserView) *userResponse {
	perms := make([]string, len(v.User.Permissions))
	for i, p := range v.User.Permissions {
		perms[i] = string(p)
	}
	return &userResponse{
		ID:          v.User.ID,
		Name:        v.User.Name,
		Email:       v.User.Email,
		Role:        string(v.User.Role),
		Permissions: perms,
		Active:      v.User.Active,
		CreatedBy:   v.User.CreatedBy,
		CreatedAt:   v.User.CreatedAt.UTC(),
		Capabilities: capabilitiesResponse{
			IsSuperUser:      v.Capabilities.IsSuperUser,
			CanManageUsers:   v.Capabilities.CanManageUsers,
			CanAccessSystem:  v.Capabilities.CanAccessSystem,
			CanExportData:    v.Capabilities.CanExportData,
			CanViewAuditLogs: v.Capabilities.CanViewAuditLogs,
		},
	}
}

func toListUsersResponse(views []*ports.UserView) listUsersResponse {
	items := make([]userResponse, len(views))
	for i, v := range views {
		items[i] = *toUserResponse(v)
	}
	return listUsersResponse{Data: items}
}

func toAuthUserResponse(u *domain.User) *userResponse {
	return toUserResponse(&ports.UserView{User: u, Capabilities: domain.CapabilitiesOf(u.Role)})
}

func toAuditResponse(events []*domain.AuditEvent) listAuditResponse {
	items := make([]auditEventResponse, len(events))
	for i, e := range events {
		items[i] = auditEventResponse{
			ActorID:   e.ActorID,
			Action:    string(e.Action),
			TargetID:  e.TargetID,
			Detail:    e.Detail,
			Timestamp: e.Timestamp.UTC(),
		}
	}
	return listAuditResponse{Data: items}
}
