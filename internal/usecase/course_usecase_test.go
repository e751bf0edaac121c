package usecase

import (
	"context"
	"errors"
	"testing"

	"placement-prep/internal/domain/course"

	"github.com/google/uuid"
)

func strp(s string) *string { return &s }

func TestCourseUsecase_ListIsCachedAndInvalidatedOnWrite(t *testing.T) {
	repo := newFakeCourseRepo()
	cache := newMemCache()
	uc := NewCourseUsecase(repo, cache, nil)
	ctx := context.Background()

	if _, err := uc.Create(ctx, CourseInput{Title: strp("DSA"), Description: strp("Arrays to graphs")}); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		items, err := uc.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 course, got %d", len(items))
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one repository read, got %d", repo.listCalls)
	}

	if _, err := uc.Create(ctx, CourseInput{Title: strp("OS"), Description: strp("Processes")}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if cache.has(courseListCacheKey) {
		t.Fatalf("list cache survived a write")
	}
	items, _ := uc.List(ctx)
	if len(items) != 2 || repo.listCalls != 2 {
		t.Fatalf("expected fresh list of 2, got %d (calls=%d)", len(items), repo.listCalls)
	}
}

func TestCourseUsecase_CreateRequiresTitleAndDescription(t *testing.T) {
	uc := NewCourseUsecase(newFakeCourseRepo(), nil, nil)
	for _, in := range []CourseInput{
		{Title: strp("only title")},
		{Description: strp("only description")},
		{Title: strp("  "), Description: strp("x")},
	} {
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidCourse) {
			t.Fatalf("expected ErrInvalidCourse, got %v", err)
		}
	}
}

func TestCourseUsecase_UpdateMergesProvidedFields(t *testing.T) {
	repo := newFakeCourseRepo()
	cache := newMemCache()
	uc := NewCourseUsecase(repo, cache, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, CourseInput{
		Title:       strp("DBMS"),
		Description: strp("Normalization"),
		Level:       strp("Beginner"),
		Topics:      []course.Topic{{Category: "SQL"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	updated, err := uc.Update(ctx, created.ID, CourseInput{Level: strp("Advanced")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "DBMS" || updated.Level != "Advanced" || len(updated.Topics) != 1 {
		t.Fatalf("unexpected merge: %+v", updated)
	}
	if cache.has(courseCacheKey(created.ID)) {
		t.Fatalf("item cache survived update")
	}
}

func TestCourseUsecase_NotFound(t *testing.T) {
	uc := NewCourseUsecase(newFakeCourseRepo(), newMemCache(), nil)
	ctx := context.Background()
	id := uuid.New()

	if _, err := uc.Get(ctx, id); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Update(ctx, id, CourseInput{}); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := uc.Delete(ctx, id); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestCourseUsecase_WriteDropsEveryCachedCourse(t *testing.T) {
	repo := newFakeCourseRepo()
	cache := newMemCache()
	uc := NewCourseUsecase(repo, cache, nil)
	ctx := context.Background()

	a, err := uc.Create(ctx, CourseInput{Title: strp("DSA"), Description: strp("Arrays")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Get(ctx, a.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := uc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !cache.has(courseCacheKey(a.ID)) || !cache.has(courseListCacheKey) {
		t.Fatalf("reads were not cached")
	}

	if _, err := uc.Create(ctx, CourseInput{Title: strp("OS"), Description: strp("Processes")}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if cache.has(courseCacheKey(a.ID)) || cache.has(courseListCacheKey) {
		t.Fatalf("course keys survived a write")
	}
}
