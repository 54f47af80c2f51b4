package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

// UserService implements user management on top of the pure access rules in
// the domain package. Every check runs before the first mutating repository
// call, so a denied request leaves storage untouched.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

// Create makes a new account on behalf of actorID. The requested role must
// pass the role-creation policy; explicit permissions replace the role
// default entirely.
func (s *UserService) Create(ctx context.Context, actorID string, input ports.CreateUserInput) (*ports.UserView, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !domain.CanCreateUsers(actor.Role) || !domain.CanCreateRole(actor.Role, input.Role) {
		s.deny(actor.ID, "", "create role "+string(input.Role))
		return nil, domain.ErrForbidden
	}

	if input.Name == "" || input.Email == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	perms := domain.DefaultPermissions(input.Role)
	if len(input.Permissions) > 0 {
		perms, err = domain.ParsePermissions(input.Permissions)
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Permissions:  perms,
		Active:       true,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorID:   actor.ID,
		Action:    domain.AuditUserCreated,
		TargetID:  created.ID,
		Detail:    string(created.Role),
		Timestamp: now,
	})
	s.log.Info().Str("actor_id", actor.ID).Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")

	return view(created), nil
}

// Get returns a single user. Everyone may view their own account; anything
// else requires management rights over the target.
func (s *UserService) Get(ctx context.Context, actorID, targetID string) (*ports.UserView, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if actorID == targetID {
		return view(actor), nil
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageUser(actor, target) {
		s.deny(actor.ID, targetID, "view user")
		return nil, domain.ErrForbidden
	}
	return view(target), nil
}

// ListManageable returns the accounts the actor may manage, in creation
// order. Super sees every user including itself; admin sees the users it
// created; caller sees nothing.
func (s *UserService) ListManageable(ctx context.Context, actorID string) ([]*ports.UserView, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var users []*domain.User
	switch actor.Role {
	case domain.RoleSuper:
		users, err = s.repo.ListAll(ctx)
	case domain.RoleAdmin:
		users, err = s.repo.ListCreatedBy(ctx, actor.ID)
	default:
		return []*ports.UserView{}, nil
	}
	if err != nil {
		return nil, err
	}

	views := make([]*ports.UserView, len(users))
	for i, u := range users {
		views[i] = view(u)
	}
	return views, nil
}

// ChangePassword sets a new password. Own password is always allowed;
// another user's requires management rights.
func (s *UserService) ChangePassword(ctx context.Context, actorID, targetID, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	target := actor
	if actorID != targetID {
		if target, err = s.repo.FindByID(ctx, targetID); err != nil {
			return err
		}
	}

	if !domain.CanChangePassword(actor, target) {
		s.deny(actor.ID, targetID, "change password")
		return domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, target.ID, string(hash)); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ActorID:   actor.ID,
		Action:    domain.AuditPasswordChanged,
		TargetID:  target.ID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// Delete removes the target account. Self-delete is always denied. When the
// target created other accounts it is deactivated instead of removed, so the
// creator references of its dependants stay resolvable.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !domain.CanDeleteUser(actor, target) {
		s.deny(actor.ID, targetID, "delete user")
		return domain.ErrForbidden
	}

	dependants, err := s.repo.ListCreatedBy(ctx, target.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if len(dependants) > 0 {
		if err := s.repo.Deactivate(ctx, target.ID); err != nil {
			return err
		}
		s.audit.Record(domain.AuditEvent{
			ActorID:   actor.ID,
			Action:    domain.AuditUserDeactivated,
			TargetID:  target.ID,
			Timestamp: now,
		})
		s.log.Info().Str("actor_id", actor.ID).Str("user_id", target.ID).Int("dependants", len(dependants)).Msg("user deactivated instead of deleted")
		return nil
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return err
	}
	s.audit.Record(domain.AuditEvent{
		ActorID:   actor.ID,
		Action:    domain.AuditUserDeleted,
		TargetID:  target.ID,
		Timestamp: now,
	})
	s.log.Info().Str("actor_id", actor.ID).Str("user_id", target.ID).Msg("user deleted")
	return nil
}

func (s *UserService) deny(actorID, targetID, detail string) {
	s.audit.Record(domain.AuditEvent{
		ActorID:   actorID,
		Action:    domain.AuditAccessDenied,
		TargetID:  targetID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

func view(u *domain.User) *ports.UserView {
	return &ports.UserView{User: u, Capabilities: domain.CapabilitiesOf(u.Role)}
}
