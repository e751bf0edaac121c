package usecase

import (
	"context"
	"errors"
	"strings"

	"placement-prep/internal/domain/problem"
	"placement-prep/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidProblem = errors.New("problem title, description and a valid difficulty are required")

type ProblemUsecase interface {
	List(ctx context.Context) ([]problem.Problem, error)
	Get(ctx context.Context, id uuid.UUID) (problem.Problem, error)
	Create(ctx context.Context, p problem.Problem) (problem.Problem, error)
}

type Problem struct {
	repo   repository.ProblemRepository
	logger *zap.Logger
}

func NewProblemUsecase(repo repository.ProblemRepository, logger *zap.Logger) *Problem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Problem{repo: repo, logger: logger}
}

func (u *Problem) List(ctx context.Context) ([]problem.Problem, error) {
	return u.repo.List(ctx)
}

func (u *Problem) Get(ctx context.Context, id uuid.UUID) (problem.Problem, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Problem) Create(ctx context.Context, p problem.Problem) (problem.Problem, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Difficulty == "" {
		p.Difficulty = problem.DifficultyEasy
	}
	if p.Title == "" || p.Description == "" || !problem.ValidDifficulty(p.Difficulty) {
		return problem.Problem{}, ErrInvalidProblem
	}
	if p.TestCases == nil {
		p.TestCases = []problem.TestCase{}
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		u.logger.Warn("problem create failed", zap.String("title", p.Title), zap.Error(err))
		return problem.Problem{}, err
	}
	u.logger.Info("problem created", zap.String("problem_id", created.ID.String()), zap.String("title", created.Title))
	return created, nil
}
