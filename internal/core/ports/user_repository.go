package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Insert must surface a duplicate email as domain.ErrUserExists; email
// uniqueness itself is enforced by the storage layer, not by callers.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id string, hash string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// ListCreatedBy returns users whose created_by equals creatorID, in
	// creation order.
	ListCreatedBy(ctx context.Context, creatorID string) ([]*domain.User, error)
	// ListAll returns every user in creation order.
	ListAll(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
