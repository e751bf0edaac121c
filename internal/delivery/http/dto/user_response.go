package dto

import (
	"time"

	"placement-prep/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                   uuid.UUID `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	TotalQuestionsSolved int       `json:"total_questions_solved"`
	CreatedAt            time.Time `json:"created_at"`
}

type UserProfileResponse struct {
	UserResponse
	SolvedProblems []uuid.UUID `json:"solved_problems"`
}

// AuthResponse keeps "token" alongside access_token for clients that read the legacy field.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		Role:                 u.Role,
		TotalQuestionsSolved: u.TotalQuestionsSolved,
		CreatedAt:            u.CreatedAt,
	}
}

func NewUserProfileResponse(p user.Profile) UserProfileResponse {
	solved := p.SolvedProblems
	if solved == nil {
		solved = []uuid.UUID{}
	}
	return UserProfileResponse{UserResponse: NewUserResponse(p.User), SolvedProblems: solved}
}
