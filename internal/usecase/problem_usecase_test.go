package usecase

import (
	"context"
	"errors"
	"testing"

	"placement-prep/internal/domain/company"
	"placement-prep/internal/domain/problem"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestProblemUsecase_Create(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	uc := NewProblemUsecase(newFakeProblemRepo(), zap.New(core))
	ctx := context.Background()

	p, err := uc.Create(ctx, problem.Problem{Title: " Two Sum ", Description: "add"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Title != "Two Sum" || p.Difficulty != problem.DifficultyEasy || p.TestCases == nil {
		t.Fatalf("unexpected problem: %+v", p)
	}

	if _, err := uc.Create(ctx, problem.Problem{Title: "X", Description: "y", Difficulty: "Impossible"}); !errors.Is(err, ErrInvalidProblem) {
		t.Fatalf("expected ErrInvalidProblem, got %v", err)
	}
	if _, err := uc.Create(ctx, problem.Problem{Title: "Two Sum", Description: "again"}); !errors.Is(err, problem.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}

	created := logs.FilterMessage("problem created").All()
	if len(created) != 1 || created[0].ContextMap()["problem_id"] != p.ID.String() {
		t.Fatalf("expected one created log for %s, got %+v", p.ID, created)
	}
	if n := logs.FilterMessage("problem create failed").Len(); n != 1 {
		t.Fatalf("expected one failed-create log, got %d", n)
	}
}

type fakeCompanyRepo struct {
	created []company.Company
	err     error
}

func (f *fakeCompanyRepo) List(context.Context) ([]company.Company, error) {
	return f.created, nil
}

func (f *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	if f.err != nil {
		return company.Company{}, f.err
	}
	f.created = append(f.created, c)
	return c, nil
}

func TestCompanyUsecase_Create(t *testing.T) {
	repo := &fakeCompanyRepo{}
	core, logs := observer.New(zap.InfoLevel)
	uc := NewCompanyUsecase(repo, zap.New(core))

	c, err := uc.Create(context.Background(), company.Company{Name: " Acme "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Acme" || c.Rounds == nil || c.Topics == nil || c.PreviousQuestions == nil {
		t.Fatalf("unexpected company: %+v", c)
	}
	if _, err := uc.Create(context.Background(), company.Company{}); !errors.Is(err, ErrInvalidCompany) {
		t.Fatalf("expected ErrInvalidCompany, got %v", err)
	}

	repo.err = company.ErrDuplicateName
	if _, err := uc.Create(context.Background(), company.Company{Name: "Acme"}); !errors.Is(err, company.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	if n := logs.FilterMessage("company created").FilterField(zap.String("name", "Acme")).Len(); n != 1 {
		t.Fatalf("expected one created log, got %d", n)
	}
	failed := logs.FilterMessage("company create failed").All()
	if len(failed) != 1 || failed[0].Level != zap.WarnLevel {
		t.Fatalf("expected one warn-level failed-create log, got %+v", failed)
	}
}
