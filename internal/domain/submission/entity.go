package submission

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TypeRun    = "run"
	TypeSubmit = "submit"

	StatusAccepted = "Accepted"
	StatusError    = "Error"
)

type Submission struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProblemID uuid.UUID `json:"problem_id"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Judge0 language ids for the languages the platform accepts.
var languageIDs = map[string]int{
	"javascript": 93,
	"python":     92,
	"java":       91,
	"c++":        54,
}

// LanguageID maps a language name (case-insensitive) to its judge id.
func LanguageID(language string) (int, bool) {
	id, ok := languageIDs[strings.ToLower(strings.TrimSpace(language))]
	return id, ok
}
