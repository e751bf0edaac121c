package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/dto"
	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/problem"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const submissionHistoryLimit = 50

type SubmissionHandler struct {
	uc usecase.SubmissionUsecase
}

type submissionRequest struct {
	ProblemID      string `json:"problemId"`
	Code           string `json:"code"`
	Language       string `json:"language"`
	SubmissionType string `json:"submissionType"`
}

func NewSubmissionHandler(uc usecase.SubmissionUsecase) *SubmissionHandler {
	return &SubmissionHandler{uc: uc}
}

func (h *SubmissionHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	mount(r, fiber.MethodPost, "/submissions", g.Auth, h.Submit)
	mount(r, fiber.MethodGet, "/submissions/me", g.Auth, h.Mine)
}

func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req submissionRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}
	problemID, err := uuid.Parse(req.ProblemID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid problem id", nil, err)
	}

	out, err := h.uc.Submit(c.Context(), usecase.SubmitInput{
		UserID:         userID,
		ProblemID:      problemID,
		Code:           req.Code,
		Language:       req.Language,
		SubmissionType: req.SubmissionType,
	})
	if err != nil {
		return mapSubmissionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSubmissionResponse(out))
}

func (h *SubmissionHandler) Mine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	out, err := h.uc.History(c.Context(), userID, submissionHistoryLimit)
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSubmissionResponses(out))
}

func mapSubmissionError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnsupportedLanguage):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported language", nil, err)
	case errors.Is(err, usecase.ErrInvalidSubmission):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid submission", nil, err)
	case errors.Is(err, problem.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgProblemNotFound, nil, err)
	case errors.Is(err, usecase.ErrNoTestCases):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Problem has no test cases", nil, err)
	case errors.Is(err, usecase.ErrJudgeUnavailable):
		return middleware.NewAppError(fiber.StatusBadGateway, "", dto.SubmissionErrorData{
			Message: "Server error during submission",
			Status:  "Server Error",
		}, err)
	default:
		return internalError(err)
	}
}
