// Package auth holds credential handling: registration rules and password checks.
// Token issuing lives one level up so this package stays free of JWT concerns.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"placement-prep/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

const minPasswordLen = 8

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// normalize trims the identity fields and lowercases the email. The password is left as typed.
func (in RegisterInput) normalize() (RegisterInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)

	switch {
	case in.Username == "":
		return in, fmt.Errorf("%w: username is required", ErrInvalidInput)
	case in.Email == "":
		return in, fmt.Errorf("%w: email is required", ErrInvalidInput)
	case !validEmail(in.Email):
		return in, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	case len(strings.TrimSpace(in.Password)) < minPasswordLen:
		return in, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return in, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int

	// dummyHash is compared against when the email is unknown so both failure paths cost a bcrypt round.
	dummyHash []byte
}

func NewService(users user.Repository) *Service {
	s := &Service{users: users, cost: bcrypt.DefaultCost}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.MinCost)
	return s
}

// Register creates a student account. Username and email are both unique.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in, err := in.normalize()
	if err != nil {
		return user.User{}, err
	}

	taken, err := s.users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return user.User{}, internal(err)
	}
	if taken {
		return user.User{}, ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, internal(err)
	}

	id := uuid.New()
	err = s.users.CreateUser(ctx, user.User{
		ID:           id,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         user.RoleStudent,
	})
	switch {
	case errors.Is(err, user.ErrDuplicate):
		// lost a race with a concurrent registration
		return user.User{}, ErrAlreadyRegistered
	case err != nil:
		return user.User{}, internal(err)
	}

	created, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, internal(err)
	}
	return withoutHash(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return user.User{}, internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return withoutHash(u), nil
}

func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func withoutHash(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
