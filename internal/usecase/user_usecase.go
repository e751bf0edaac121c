package usecase

import (
	"context"
	"time"

	"placement-prep/internal/domain/user"
	ucuser "placement-prep/internal/usecase/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LeaderboardSize     = 50
	leaderboardCacheTTL = 60 * time.Second
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Leaderboard(ctx context.Context) ([]user.LeaderboardEntry, error)
}

type User struct {
	svc    *ucuser.Service
	users  user.Repository
	cache  Cache
	logger *zap.Logger
}

func NewUserUsecase(users user.Repository, cache Cache, logger *zap.Logger) *User {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &User{svc: ucuser.NewService(users), users: users, cache: cacheOrNoop(cache), logger: logger}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	return u.svc.GetProfile(ctx, userID)
}

func (u *User) Leaderboard(ctx context.Context) ([]user.LeaderboardEntry, error) {
	var cached []user.LeaderboardEntry
	if hit, err := u.cache.GetJSON(ctx, leaderboardCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := u.users.Leaderboard(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []user.LeaderboardEntry{}
	}

	if err := u.cache.SetJSON(ctx, leaderboardCacheKey, out, leaderboardCacheTTL); err != nil {
		u.logger.Debug("leaderboard cache set failed", zap.Error(err))
	}
	return out, nil
}
