package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"placement-prep/internal/domain/matching"
	"placement-prep/internal/infrastructure/extract"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrResumeRequired         = errors.New("resume file is required")
	ErrJobDescriptionRequired = errors.New("job description is required")
	ErrResumeTooLarge         = errors.New("resume file is too large")
	ErrResumeUnreadable       = errors.New("resume could not be read")
)

type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ResumeCheckInput struct {
	UserID         uuid.UUID
	File           *ResumeFile
	JobDescription string
}

// ResumeArchive stores raw uploads; implemented by the S3 archive.
type ResumeArchive interface {
	PutResume(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error)
}

type ResumeUsecase interface {
	Check(ctx context.Context, in ResumeCheckInput) (matching.KeywordResult, error)
}

type Resume struct {
	archive  ResumeArchive
	cache    Cache
	logger   *zap.Logger
	maxBytes int
}

func NewResumeUsecase(archive ResumeArchive, cache Cache, maxBytes int, logger *zap.Logger) *Resume {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resume{archive: archive, cache: cacheOrNoop(cache), logger: logger, maxBytes: maxBytes}
}

func (u *Resume) Check(ctx context.Context, in ResumeCheckInput) (matching.KeywordResult, error) {
	if in.File == nil || len(in.File.Data) == 0 {
		return matching.KeywordResult{}, ErrResumeRequired
	}
	jd := strings.TrimSpace(in.JobDescription)
	if jd == "" {
		return matching.KeywordResult{}, ErrJobDescriptionRequired
	}
	if u.maxBytes > 0 && len(in.File.Data) > u.maxBytes {
		return matching.KeywordResult{}, ErrResumeTooLarge
	}

	u.archiveUpload(ctx, in)

	mime, err := extract.DetectMime(in.File.ContentType, in.File.Filename)
	if err != nil {
		return matching.KeywordResult{}, fmt.Errorf("%w: %w", ErrResumeUnreadable, err)
	}

	// Extraction depends on the detected type, so it is part of the key.
	key := resumeCheckCacheKey(mime, in.File.Data, jd)
	var cached matching.KeywordResult
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	text, err := extract.Text(mime, in.File.Data)
	if err != nil {
		return matching.KeywordResult{}, fmt.Errorf("%w: %w", ErrResumeUnreadable, err)
	}

	res, err := matching.Match(text, jd)
	if err != nil {
		return matching.KeywordResult{}, err
	}

	if err := u.cache.SetJSON(ctx, key, res, 0); err != nil {
		u.logger.Debug("resume check cache set failed", zap.Error(err))
	}
	u.logger.Info("resume checked",
		zap.String("user_id", in.UserID.String()),
		zap.String("mime", mime),
		zap.Int("score", res.Score),
		zap.Int("total_keywords", res.TotalKeywords),
	)
	return res, nil
}

// Archive failures never fail the check.
func (u *Resume) archiveUpload(ctx context.Context, in ResumeCheckInput) {
	if u.archive == nil {
		return
	}
	key, err := u.archive.PutResume(ctx, in.UserID, in.File.Filename, in.File.ContentType, in.File.Data)
	if err != nil {
		u.logger.Warn("resume archive failed", zap.String("user_id", in.UserID.String()), zap.Error(err))
		return
	}
	u.logger.Debug("resume archived", zap.String("key", key))
}
