package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateName = errors.New("company name already exists")

type Topic struct {
	Category string   `json:"category"`
	Subjects []string `json:"subjects"`
}

type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Company struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	LogoURL           string     `json:"logo_url"`
	Rounds            []string   `json:"rounds"`
	Topics            []Topic    `json:"topics"`
	PreviousQuestions []Question `json:"previous_questions"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
