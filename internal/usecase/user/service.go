package user

import (
	"context"
	"errors"

	"placement-prep/internal/domain/user"

	"github.com/google/uuid"
)

var ErrInternal = errors.New("internal error")

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

// GetProfile returns the user with the ids of every problem they have solved.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}

	solved, err := s.users.SolvedProblemIDs(ctx, userID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	if solved == nil {
		solved = []uuid.UUID{}
	}

	usr.PasswordHash = ""
	return user.Profile{User: usr, SolvedProblems: solved}, nil
}
