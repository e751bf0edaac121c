package dto

import (
	"time"

	"placement-prep/internal/domain/submission"

	"github.com/google/uuid"
)

type SubmissionResponse struct {
	ID        uuid.UUID `json:"id"`
	ProblemID uuid.UUID `json:"problem_id"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionErrorData is returned with a 502 when the judge cannot be reached.
type SubmissionErrorData struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func NewSubmissionResponse(s submission.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID,
		ProblemID: s.ProblemID,
		Language:  s.Language,
		Status:    s.Status,
		Output:    s.Output,
		CreatedAt: s.CreatedAt,
	}
}

func NewSubmissionResponses(in []submission.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(in))
	for _, s := range in {
		out = append(out, NewSubmissionResponse(s))
	}
	return out
}
