package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

// LoginThrottle abstracts the brute-force guard (Redis). Failed attempts are
// counted per email with a TTL; once the counter crosses the lockout
// threshold the account is locked until the window expires.
type LoginThrottle interface {
	IsLocked(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements login and first-user bootstrap.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle
	audit     ports.AuditRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	throttle LoginThrottle,
	audit ports.AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		throttle:  throttle,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login verifies the credentials and returns a signed token. The throttle
// check runs first so locked accounts never reach the bcrypt compare.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	locked, err := s.throttle.IsLocked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("throttle check failed, allowing attempt")
	} else if locked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Count the miss so enumeration attempts lock out too.
			s.registerFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.registerFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to reset throttle counter")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorID:   user.ID,
		Action:    domain.AuditLogin,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")

	return token, user, nil
}

// Bootstrap creates the first super user. Any request after at least one
// user exists is rejected; regular accounts go through the user service.
func (s *AuthService) Bootstrap(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuper,
		Permissions:  domain.DefaultPermissions(domain.RoleSuper),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("super user bootstrapped")
	return created, nil
}

func (s *AuthService) registerFailure(ctx context.Context, email string) {
	if err := s.throttle.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
