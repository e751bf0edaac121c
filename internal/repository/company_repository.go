package repository

import (
	"context"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	List(ctx context.Context) ([]company.Company, error)
	Create(ctx context.Context, c company.Company) (company.Company, error)
}

type PostgresCompanyRepository struct {
	db database.Querier
}

func NewPostgresCompanyRepository(db database.Querier) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, name, description, logo_url, rounds, topics, previous_questions, created_at, updated_at`

func (r *PostgresCompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	rounds, err := toJSONB(c.Rounds, "[]")
	if err != nil {
		return company.Company{}, err
	}
	topics, err := toJSONB(c.Topics, "[]")
	if err != nil {
		return company.Company{}, err
	}
	questions, err := toJSONB(c.PreviousQuestions, "[]")
	if err != nil {
		return company.Company{}, err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	created, err := scanCompany(r.db.QueryRow(ctx,
		`INSERT INTO companies (id, name, description, logo_url, rounds, topics, previous_questions)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::jsonb)
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Description, c.LogoURL, rounds, topics, questions,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return company.Company{}, company.ErrDuplicateName
		}
		return company.Company{}, err
	}
	return created, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	var rounds, topics, questions []byte
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.LogoURL, &rounds, &topics, &questions, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return company.Company{}, err
	}
	if err := fromJSONB(rounds, &c.Rounds); err != nil {
		return company.Company{}, err
	}
	if err := fromJSONB(topics, &c.Topics); err != nil {
		return company.Company{}, err
	}
	if err := fromJSONB(questions, &c.PreviousQuestions); err != nil {
		return company.Company{}, err
	}
	return c, nil
}
