package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"placement-prep/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	byID map[uuid.UUID]user.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	for _, x := range m.byID {
		if x.Email == u.Email || x.Username == u.Username {
			return user.ErrDuplicate
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) SolvedProblemIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (m *memUsers) Leaderboard(context.Context, int) ([]user.LeaderboardEntry, error) {
	return nil, nil
}

func newTestService() (*Service, *memUsers) {
	repo := newMemUsers()
	s := NewService(repo)
	s.cost = bcrypt.MinCost
	return s, repo
}

func TestService_RegisterAndLogin(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Username: "asha", Email: "  Asha@Example.COM ", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "asha@example.com" || u.Role != user.RoleStudent || u.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if stored := repo.byID[u.ID]; stored.PasswordHash == "" || strings.Contains(stored.PasswordHash, "password123") {
		t.Fatalf("password not hashed")
	}

	got, err := s.Login(ctx, LoginInput{Email: "ASHA@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "" {
		t.Fatalf("unexpected login user: %+v", got)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	s, _ := newTestService()
	cases := []RegisterInput{
		{Username: "", Email: "a@b.c", Password: "password123"},
		{Username: "a", Email: "", Password: "password123"},
		{Username: "a", Email: "not-an-email", Password: "password123"},
		{Username: "a", Email: "a@b.c", Password: "short"},
	}
	for _, in := range cases {
		if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%+v) = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestService_RegisterDuplicate(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	if _, err := s.Register(ctx, RegisterInput{Username: "asha", Email: "a@b.c", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := s.Register(ctx, RegisterInput{Username: "asha", Email: "other@b.c", Password: "password123"})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestService_LoginFailures(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	if _, err := s.Register(ctx, RegisterInput{Username: "asha", Email: "a@b.c", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, in := range []LoginInput{
		{Email: "a@b.c", Password: "wrong-password"},
		{Email: "nobody@b.c", Password: "password123"},
		{Email: "", Password: "password123"},
	} {
		if _, err := s.Login(ctx, in); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%+v) = %v, want ErrInvalidCredentials", in, err)
		}
	}
}

type failingUsers struct {
	*memUsers
}

func (failingUsers) ExistsByEmailOrUsername(context.Context, string, string) (bool, error) {
	return false, errors.New("connection reset")
}

func TestService_RegisterWrapsStorageFailure(t *testing.T) {
	s := NewService(failingUsers{newMemUsers()})
	s.cost = bcrypt.MinCost

	_, err := s.Register(context.Background(), RegisterInput{Username: "asha", Email: "a@b.c", Password: "password123"})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("cause lost: %v", err)
	}
}
