package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"placement-prep/internal/domain/submission"
	"placement-prep/internal/infrastructure/judge"
	"placement-prep/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidSubmission   = errors.New("invalid submission")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoTestCases         = errors.New("problem has no test cases")
	ErrJudgeUnavailable    = errors.New("judge unavailable")
)

type SubmitInput struct {
	UserID         uuid.UUID
	ProblemID      uuid.UUID
	Code           string
	Language       string
	SubmissionType string
}

type SubmissionUsecase interface {
	Submit(ctx context.Context, in SubmitInput) (submission.Submission, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]submission.Submission, error)
}

type Submission struct {
	problems    repository.ProblemRepository
	submissions repository.SubmissionRepository
	judge       judge.Client
	cache       Cache
	logger      *zap.Logger
}

func NewSubmissionUsecase(problems repository.ProblemRepository, submissions repository.SubmissionRepository, judgeClient judge.Client, cache Cache, logger *zap.Logger) *Submission {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submission{
		problems:    problems,
		submissions: submissions,
		judge:       judgeClient,
		cache:       cacheOrNoop(cache),
		logger:      logger,
	}
}

// Submit runs the code against the problem's first test case and always stores the outcome.
// An accepted "submit" marks the problem solved for the user at most once.
func (u *Submission) Submit(ctx context.Context, in SubmitInput) (submission.Submission, error) {
	subType := strings.ToLower(strings.TrimSpace(in.SubmissionType))
	if subType == "" {
		subType = submission.TypeRun
	}
	if in.ProblemID == uuid.Nil || strings.TrimSpace(in.Code) == "" ||
		(subType != submission.TypeRun && subType != submission.TypeSubmit) {
		return submission.Submission{}, ErrInvalidSubmission
	}
	langID, ok := submission.LanguageID(in.Language)
	if !ok {
		return submission.Submission{}, ErrUnsupportedLanguage
	}

	p, err := u.problems.GetByID(ctx, in.ProblemID)
	if err != nil {
		return submission.Submission{}, err
	}
	if len(p.TestCases) == 0 {
		return submission.Submission{}, ErrNoTestCases
	}
	tc := p.TestCases[0]

	res, err := u.judge.Execute(ctx, judge.Request{
		SourceCode:     in.Code,
		LanguageID:     langID,
		Stdin:          tc.Input,
		ExpectedOutput: tc.Output,
	})
	if err != nil {
		u.logger.Error("judge execute failed", zap.String("problem_id", p.ID.String()), zap.Error(err))
		return submission.Submission{}, fmt.Errorf("%w: %w", ErrJudgeUnavailable, err)
	}

	markSolved := res.Status == submission.StatusAccepted && subType == submission.TypeSubmit
	saved, solvedNow, err := u.submissions.Save(ctx, submission.Submission{
		UserID:    in.UserID,
		ProblemID: p.ID,
		Code:      in.Code,
		Language:  in.Language,
		Status:    res.Status,
		Output:    res.Output,
	}, markSolved)
	if err != nil {
		return submission.Submission{}, err
	}

	if solvedNow {
		if err := u.cache.Delete(ctx, leaderboardCacheKey); err != nil {
			u.logger.Warn("leaderboard cache invalidation failed", zap.Error(err))
		}
		u.logger.Info("problem solved", zap.String("user_id", in.UserID.String()), zap.String("problem_id", p.ID.String()))
	}
	return saved, nil
}

func (u *Submission) History(ctx context.Context, userID uuid.UUID, limit int) ([]submission.Submission, error) {
	return u.submissions.ListByUser(ctx, userID, limit)
}
