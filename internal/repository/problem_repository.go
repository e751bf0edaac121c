package repository

import (
	"context"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/problem"

	"github.com/google/uuid"
)

type ProblemRepository interface {
	List(ctx context.Context) ([]problem.Problem, error)
	GetByID(ctx context.Context, id uuid.UUID) (problem.Problem, error)
	Create(ctx context.Context, p problem.Problem) (problem.Problem, error)
}

type PostgresProblemRepository struct {
	db database.Querier
}

func NewPostgresProblemRepository(db database.Querier) *PostgresProblemRepository {
	return &PostgresProblemRepository{db: db}
}

const problemColumns = `id, title, description, difficulty, test_cases, created_at, updated_at`

func (r *PostgresProblemRepository) List(ctx context.Context) ([]problem.Problem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+problemColumns+` FROM problems ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]problem.Problem, 0)
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProblemRepository) GetByID(ctx context.Context, id uuid.UUID) (problem.Problem, error) {
	p, err := scanProblem(r.db.QueryRow(ctx, `SELECT `+problemColumns+` FROM problems WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return problem.Problem{}, problem.ErrNotFound
		}
		return problem.Problem{}, err
	}
	return p, nil
}

func (r *PostgresProblemRepository) Create(ctx context.Context, p problem.Problem) (problem.Problem, error) {
	cases, err := toJSONB(p.TestCases, "[]")
	if err != nil {
		return problem.Problem{}, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	created, err := scanProblem(r.db.QueryRow(ctx,
		`INSERT INTO problems (id, title, description, difficulty, test_cases)
		 VALUES ($1, $2, $3, $4, $5::jsonb)
		 RETURNING `+problemColumns,
		p.ID, p.Title, p.Description, p.Difficulty, cases,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return problem.Problem{}, problem.ErrDuplicateTitle
		}
		return problem.Problem{}, err
	}
	return created, nil
}

func scanProblem(row database.Row) (problem.Problem, error) {
	var p problem.Problem
	var cases []byte
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Difficulty, &cases, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return problem.Problem{}, err
	}
	if err := fromJSONB(cases, &p.TestCases); err != nil {
		return problem.Problem{}, err
	}
	if p.TestCases == nil {
		p.TestCases = []problem.TestCase{}
	}
	return p, nil
}
