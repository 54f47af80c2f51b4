package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create an account.
// Permissions, when non-empty, replaces the role's default set entirely.
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	Role        domain.Role
	Permissions []string
}

// UserView is the user representation returned to the transport layer,
// with capability flags derived from role.
type UserView struct {
	User         *domain.User
	Capabilities domain.Capabilities
}

// UserService defines user-management use cases. Every operation takes the
// acting user's id as resolved from the verified token; all authorization
// checks run before any mutating storage call.
type UserService interface {
	Create(ctx context.Context, actorID string, input CreateUserInput) (*UserView, error)
	Get(ctx context.Context, actorID, targetID string) (*UserView, error)
	// ListManageable returns the users the actor may manage, in creation
	// order: all users for super (self included), own-created users for
	// admin, nothing for caller.
	ListManageable(ctx context.Context, actorID string) ([]*UserView, error)
	ChangePassword(ctx context.Context, actorID, targetID, newPassword string) error
	// Delete removes the target account, or deactivates it instead when
	// other accounts reference it as their creator.
	Delete(ctx context.Context, actorID, targetID string) error
}
