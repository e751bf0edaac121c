package repository

import (
	"context"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/chat"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Append(ctx context.Context, m chat.Message) (chat.Message, error)
	// Recent returns the user's last limit messages, oldest first.
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]chat.Message, error)
}

type PostgresChatRepository struct {
	db database.DB
}

func NewPostgresChatRepository(db database.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Append(ctx context.Context, m chat.Message) (chat.Message, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO chat_history (id, user_id, role, message) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		m.ID, m.UserID, m.Role, m.Message,
	)
	if err := row.Scan(&m.CreatedAt); err != nil {
		return chat.Message{}, err
	}
	return m, nil
}

func (r *PostgresChatRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, role, message, created_at FROM (
			SELECT id, user_id, role, message, created_at FROM chat_history
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent ORDER BY created_at ASC`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0, limit)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
