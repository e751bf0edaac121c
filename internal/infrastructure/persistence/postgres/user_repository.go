package postgres

import (
	"context"
	"database/sql"
	"errors"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	selectUser = `SELECT id, username, email, password_hash, role, total_questions_solved, created_at, updated_at FROM users`

	defaultLeaderboardSize = 50
)

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser maps a unique violation on email or username to user.ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role,
	)
	if pgErr := (*pgconn.PgError)(nil); errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return user.ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.TotalQuestionsSolved, &u.CreatedAt, &u.UpdatedAt,
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return user.User{}, user.ErrNotFound
	case err != nil:
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&taken)
	return taken, err
}

// SolvedProblemIDs lists the user's solved problems, earliest solve first.
func (r *UserRepository) SolvedProblemIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT problem_id FROM solved_problems WHERE user_id = $1 ORDER BY solved_at`,
		id,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(dst *uuid.UUID) []any { return []any{dst} })
}

// Leaderboard ranks by solved count; ties are broken alphabetically so the order is stable.
func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]user.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	rows, err := r.db.Query(ctx, `
		SELECT username, total_questions_solved
		FROM users
		ORDER BY total_questions_solved DESC, username
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(e *user.LeaderboardEntry) []any {
		return []any{&e.Username, &e.TotalQuestionsSolved}
	})
}

// collect scans every row into a fresh T and closes rows. The result is never nil.
func collect[T any](rows database.Rows, fields func(*T) []any) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var v T
		if err := rows.Scan(fields(&v)...); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

var _ user.Repository = (*UserRepository)(nil)
