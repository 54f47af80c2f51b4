package ports

import (
	"context"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// AuthService handles credential verification and token issuance.
type AuthService interface {
	// Login verifies email+password and returns a signed token on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Bootstrap creates the first super user. It is only permitted while no
	// users exist; afterwards it returns domain.ErrForbidden.
	Bootstrap(ctx context.Context, name, email, password string) (*domain.User, error)
}
