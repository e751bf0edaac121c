package usecase

import (
	"context"
	"errors"
	"strings"

	"placement-prep/internal/domain/course"
	"placement-prep/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCourse = errors.New("course title and description are required")

// CourseInput carries a full course on create and only the provided fields on update.
type CourseInput struct {
	Title           *string
	Description     *string
	ImageURL        *string
	Category        *string
	Instructor      *string
	Level           *string
	Topics          []course.Topic
	OnlineResources *course.OnlineResources
}

type CourseUsecase interface {
	List(ctx context.Context) ([]course.Course, error)
	Get(ctx context.Context, id uuid.UUID) (course.Course, error)
	Create(ctx context.Context, in CourseInput) (course.Course, error)
	Update(ctx context.Context, id uuid.UUID, in CourseInput) (course.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Course struct {
	repo   repository.CourseRepository
	cache  Cache
	logger *zap.Logger
}

func NewCourseUsecase(repo repository.CourseRepository, cache Cache, logger *zap.Logger) *Course {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Course{repo: repo, cache: cacheOrNoop(cache), logger: logger}
}

func (u *Course) List(ctx context.Context) ([]course.Course, error) {
	var cached []course.Course
	if hit, err := u.cache.GetJSON(ctx, courseListCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.cache.SetJSON(ctx, courseListCacheKey, out, 0); err != nil {
		u.logger.Debug("course list cache set failed", zap.Error(err))
	}
	return out, nil
}

func (u *Course) Get(ctx context.Context, id uuid.UUID) (course.Course, error) {
	key := courseCacheKey(id)
	var cached course.Course
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return course.Course{}, err
	}
	if err := u.cache.SetJSON(ctx, key, c, 0); err != nil {
		u.logger.Debug("course cache set failed", zap.String("course_id", id.String()), zap.Error(err))
	}
	return c, nil
}

func (u *Course) Create(ctx context.Context, in CourseInput) (course.Course, error) {
	c := course.Course{}
	applyCourseInput(&c, in)
	if err := validateCourse(c); err != nil {
		return course.Course{}, err
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return course.Course{}, err
	}
	u.invalidate(ctx, created.ID)
	return created, nil
}

func (u *Course) Update(ctx context.Context, id uuid.UUID, in CourseInput) (course.Course, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return course.Course{}, err
	}
	applyCourseInput(&c, in)
	if err := validateCourse(c); err != nil {
		return course.Course{}, err
	}

	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return course.Course{}, err
	}
	u.invalidate(ctx, id)
	return updated, nil
}

func (u *Course) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, id)
	return nil
}

// invalidate drops the list and every cached course; writes are rare admin actions.
func (u *Course) invalidate(ctx context.Context, id uuid.UUID) {
	if err := u.cache.DeleteByPattern(ctx, courseCachePattern); err != nil {
		u.logger.Warn("course cache invalidation failed", zap.String("course_id", id.String()), zap.Error(err))
	}
}

func applyCourseInput(c *course.Course, in CourseInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Title, in.Title)
	set(&c.Description, in.Description)
	set(&c.ImageURL, in.ImageURL)
	set(&c.Category, in.Category)
	set(&c.Instructor, in.Instructor)
	set(&c.Level, in.Level)
	if in.Topics != nil {
		c.Topics = in.Topics
	}
	if in.OnlineResources != nil {
		c.OnlineResources = *in.OnlineResources
	}
}

func validateCourse(c course.Course) error {
	if c.Title == "" || c.Description == "" {
		return ErrInvalidCourse
	}
	return nil
}
