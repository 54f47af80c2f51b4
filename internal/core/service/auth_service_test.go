package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

// stubThrottle counts failures in memory and locks after maxFailures.
type stubThrottle struct {
	failures    map[string]int
	maxFailures int
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: map[string]int{}, maxFailures: max}
}

func (s *stubThrottle) IsLocked(_ context.Context, email string) (bool, error) {
	return s.failures[email] >= s.maxFailures, nil
}

func (s *stubThrottle) Fail(_ context.Context, email string) error {
	s.failures[email]++
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	delete(s.failures, email)
	return nil
}

const testSecret = "test-secret"

func newAuthService(repo *stubUserRepo, throttle LoginThrottle) (*AuthService, *stubRecorder) {
	rec := &stubRecorder{}
	return NewAuthService(repo, throttle, rec, testSecret, time.Hour, zerolog.Nop()), rec
}

func seedLoginUser(repo *stubUserRepo, email, password string, role domain.Role) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u, _ := repo.Insert(context.Background(), &domain.User{
		Name:         "tester",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  domain.DefaultPermissions(role),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	})
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	u := seedLoginUser(repo, "ana@agency.test", "correct horse", domain.RoleAdmin)
	svc, rec := newAuthService(repo, newStubThrottle(5))

	token, got, err := svc.Login(context.Background(), "ana@agency.test", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("returned user %q, want %q", got.ID, u.ID)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != u.ID {
		t.Errorf("sub claim = %v, want %v", claims["sub"], u.ID)
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Errorf("role claim = %v, want %v", claims["role"], domain.RoleAdmin)
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Error("exp claim missing")
	}

	actions := rec.actions()
	if len(actions) != 1 || actions[0] != domain.AuditLogin {
		t.Errorf("audit actions = %v, want [login]", actions)
	}
}

func TestAuthService_Login_WrongPasswordCountsFailure(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(repo, "ana@agency.test", "correct horse", domain.RoleAdmin)
	throttle := newStubThrottle(5)
	svc, _ := newAuthService(repo, throttle)

	_, _, err := svc.Login(context.Background(), "ana@agency.test", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["ana@agency.test"] != 1 {
		t.Fatalf("failure counter = %d, want 1", throttle.failures["ana@agency.test"])
	}

	// A later good login clears the counter.
	if _, _, err := svc.Login(context.Background(), "ana@agency.test", "correct horse"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.failures["ana@agency.test"] != 0 {
		t.Fatal("counter not reset after successful login")
	}
}

func TestAuthService_Login_LockedOut(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(repo, "ana@agency.test", "correct horse", domain.RoleAdmin)
	throttle := newStubThrottle(3)
	svc, _ := newAuthService(repo, throttle)

	for i := 0; i < 3; i++ {
		_, _, err := svc.Login(context.Background(), "ana@agency.test", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Locked now, even with the right password.
	_, _, err := svc.Login(context.Background(), "ana@agency.test", "correct horse")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailCountsFailure(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(5)
	svc, _ := newAuthService(repo, throttle)

	_, _, err := svc.Login(context.Background(), "ghost@agency.test", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["ghost@agency.test"] != 1 {
		t.Fatal("missing email should still count towards the lockout")
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedLoginUser(repo, "ana@agency.test", "correct horse", domain.RoleAdmin)
	_ = repo.Deactivate(context.Background(), u.ID)
	svc, _ := newAuthService(repo, newStubThrottle(5))

	_, _, err := svc.Login(context.Background(), "ana@agency.test", "correct horse")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestAuthService_Bootstrap(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, newStubThrottle(5))

	u, err := svc.Bootstrap(context.Background(), "root", "root@agency.test", "first secret")
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if u.Role != domain.RoleSuper {
		t.Fatalf("bootstrap role = %s, want super", u.Role)
	}
	if len(u.Permissions) != len(domain.DefaultPermissions(domain.RoleSuper)) {
		t.Fatalf("bootstrap permissions = %v", u.Permissions)
	}

	// Second bootstrap is rejected once any user exists.
	_, err = svc.Bootstrap(context.Background(), "other", "other@agency.test", "second secret")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The bootstrapped account can log in straight away.
	token, _, err := svc.Login(context.Background(), "root@agency.test", "first secret")
	if err != nil || token == "" {
		t.Fatalf("login after bootstrap failed: %v", err)
	}
}
