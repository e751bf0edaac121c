package usecase

import (
	"context"
	"errors"
	"testing"

	"placement-prep/internal/domain/user"

	"github.com/google/uuid"
)

func TestUserUsecase_GetProfile(t *testing.T) {
	u := user.User{ID: uuid.New(), Username: "asha", PasswordHash: "secret-hash", TotalQuestionsSolved: 2}
	users := newFakeUsers(u)
	p1, p2 := uuid.New(), uuid.New()
	users.solved[u.ID] = []uuid.UUID{p1, p2}

	uc := NewUserUsecase(users, nil, nil)
	prof, err := uc.GetProfile(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if prof.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
	if len(prof.SolvedProblems) != 2 || prof.TotalQuestionsSolved != 2 {
		t.Fatalf("unexpected profile: %+v", prof)
	}

	other, err := uc.GetProfile(context.Background(), uuid.New())
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v (%+v)", err, other)
	}
}

func TestUserUsecase_ProfileWithoutSolvesRendersEmptyList(t *testing.T) {
	u := user.User{ID: uuid.New()}
	prof, err := NewUserUsecase(newFakeUsers(u), nil, nil).GetProfile(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if prof.SolvedProblems == nil {
		t.Fatalf("expected empty, non-nil list")
	}
}

func TestUserUsecase_LeaderboardCached(t *testing.T) {
	users := newFakeUsers()
	for i := 0; i < LeaderboardSize+10; i++ {
		users.leaderboard = append(users.leaderboard, user.LeaderboardEntry{Username: "u", TotalQuestionsSolved: 100 - i})
	}
	uc := NewUserUsecase(users, newMemCache(), nil)

	for i := 0; i < 3; i++ {
		got, err := uc.Leaderboard(context.Background())
		if err != nil {
			t.Fatalf("leaderboard: %v", err)
		}
		if len(got) != LeaderboardSize {
			t.Fatalf("expected %d entries, got %d", LeaderboardSize, len(got))
		}
	}
	if users.lbCalls != 1 {
		t.Fatalf("expected one repository read, got %d", users.lbCalls)
	}
}
