package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID                   uuid.UUID `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Role                 string    `json:"role"`
	TotalQuestionsSolved int       `json:"total_questions_solved"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Profile is the signed-in user's view, including the problems already solved.
type Profile struct {
	User
	SolvedProblems []uuid.UUID `json:"solved_problems"`
}

type LeaderboardEntry struct {
	Username             string `json:"username"`
	TotalQuestionsSolved int    `json:"total_questions_solved"`
}
