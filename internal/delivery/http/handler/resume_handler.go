package handler

import (
	"errors"
	"io"

	"placement-prep/internal/delivery/http/dto"
	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	formResume         = "resume"
	formJobDescription = "jobDescription"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	mount(r, fiber.MethodPost, "/resume/check", g.Auth, h.Check)
}

func (h *ResumeHandler) Check(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(formResume)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume PDF required", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Error reading resume", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Error reading resume", nil, err)
	}

	res, err := h.uc.Check(c.Context(), usecase.ResumeCheckInput{
		UserID: userID,
		File: &usecase.ResumeFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Data:        data,
		},
		JobDescription: c.FormValue(formJobDescription),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResumeRequired):
			return middleware.NewAppError(fiber.StatusBadRequest, "Resume PDF required", nil, err)
		case errors.Is(err, usecase.ErrJobDescriptionRequired):
			return middleware.NewAppError(fiber.StatusBadRequest, "Job Description is required", nil, err)
		case errors.Is(err, usecase.ErrResumeTooLarge):
			return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file is too large", nil, err)
		case errors.Is(err, usecase.ErrResumeUnreadable):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Error reading resume", nil, err)
		default:
			return internalError(err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewATSCheckResponse(res))
}
