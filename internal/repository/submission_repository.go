package repository

import (
	"context"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/submission"

	"github.com/google/uuid"
)

type SubmissionRepository interface {
	// Save stores s. When markSolved is set the (user, problem) pair is recorded as solved and the
	// user's counter incremented, once; solvedNow reports whether this call recorded it.
	Save(ctx context.Context, s submission.Submission, markSolved bool) (saved submission.Submission, solvedNow bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]submission.Submission, error)
}

type PostgresSubmissionRepository struct {
	db database.DB
}

func NewPostgresSubmissionRepository(db database.DB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

const submissionColumns = `id, user_id, problem_id, code, language, status, output, created_at, updated_at`

func (r *PostgresSubmissionRepository) Save(ctx context.Context, s submission.Submission, markSolved bool) (submission.Submission, bool, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	var saved submission.Submission
	solvedNow := false
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if markSolved {
			n, err := tx.Exec(ctx,
				`INSERT INTO solved_problems (user_id, problem_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				s.UserID, s.ProblemID,
			)
			if err != nil {
				return err
			}
			if n == 1 {
				if _, err := tx.Exec(ctx,
					`UPDATE users SET total_questions_solved = total_questions_solved + 1, updated_at = now() WHERE id = $1`,
					s.UserID,
				); err != nil {
					return err
				}
				solvedNow = true
			}
		}

		var err error
		saved, err = scanSubmission(tx.QueryRow(ctx,
			`INSERT INTO submissions (id, user_id, problem_id, code, language, status, output)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+submissionColumns,
			s.ID, s.UserID, s.ProblemID, s.Code, s.Language, s.Status, s.Output,
		))
		return err
	})
	if err != nil {
		return submission.Submission{}, false, err
	}
	return saved, solvedNow, nil
}

func (r *PostgresSubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]submission.Submission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]submission.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSubmission(row database.Row) (submission.Submission, error) {
	var s submission.Submission
	err := row.Scan(&s.ID, &s.UserID, &s.ProblemID, &s.Code, &s.Language, &s.Status, &s.Output, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
