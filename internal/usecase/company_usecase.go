package usecase

import (
	"context"
	"errors"
	"strings"

	"placement-prep/internal/domain/company"
	"placement-prep/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidCompany = errors.New("company name is required")

type CompanyUsecase interface {
	List(ctx context.Context) ([]company.Company, error)
	Create(ctx context.Context, c company.Company) (company.Company, error)
}

type Company struct {
	repo   repository.CompanyRepository
	logger *zap.Logger
}

func NewCompanyUsecase(repo repository.CompanyRepository, logger *zap.Logger) *Company {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Company{repo: repo, logger: logger}
}

func (u *Company) List(ctx context.Context) ([]company.Company, error) {
	return u.repo.List(ctx)
}

func (u *Company) Create(ctx context.Context, c company.Company) (company.Company, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return company.Company{}, ErrInvalidCompany
	}
	if c.Rounds == nil {
		c.Rounds = []string{}
	}
	if c.Topics == nil {
		c.Topics = []company.Topic{}
	}
	if c.PreviousQuestions == nil {
		c.PreviousQuestions = []company.Question{}
	}
	created, err := u.repo.Create(ctx, c)
	if err != nil {
		u.logger.Warn("company create failed", zap.String("name", c.Name), zap.Error(err))
		return company.Company{}, err
	}
	u.logger.Info("company created", zap.String("company_id", created.ID.String()), zap.String("name", created.Name))
	return created, nil
}
