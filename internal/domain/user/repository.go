package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	SolvedProblemIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
