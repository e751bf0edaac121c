package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/course"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const msgCourseNotFound = "Course not found"

type CourseHandler struct {
	uc usecase.CourseUsecase
}

type courseRequest struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	ImageURL        *string                 `json:"image_url"`
	Category        *string                 `json:"category"`
	Instructor      *string                 `json:"instructor"`
	Level           *string                 `json:"level"`
	Topics          []course.Topic          `json:"topics"`
	OnlineResources *course.OnlineResources `json:"online_resources"`
}

func (r courseRequest) input() usecase.CourseInput {
	return usecase.CourseInput{
		Title:           r.Title,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		Category:        r.Category,
		Instructor:      r.Instructor,
		Level:           r.Level,
		Topics:          r.Topics,
		OnlineResources: r.OnlineResources,
	}
}

func NewCourseHandler(uc usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("/courses", h.List)
	r.Get("/courses/:id", h.Get)
	mount(r, fiber.MethodPost, "/courses", g.Admin, h.Create)
	mount(r, fiber.MethodPut, "/courses/:id", g.Admin, h.Update)
	mount(r, fiber.MethodDelete, "/courses/:id", g.Admin, h.Delete)
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CourseHandler) Get(c fiber.Ctx) error {
	id, err := idParam(c, "id", msgCourseNotFound)
	if err != nil {
		return err
	}

	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCourseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CourseHandler) Create(c fiber.Ctx) error {
	var req courseRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}

	out, err := h.uc.Create(c.Context(), req.input())
	if err != nil {
		return mapCourseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Course created", out)
}

func (h *CourseHandler) Update(c fiber.Ctx) error {
	id, err := idParam(c, "id", msgCourseNotFound)
	if err != nil {
		return err
	}

	var req courseRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}

	out, err := h.uc.Update(c.Context(), id, req.input())
	if err != nil {
		return mapCourseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Course updated", out)
}

func (h *CourseHandler) Delete(c fiber.Ctx) error {
	id, err := idParam(c, "id", msgCourseNotFound)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapCourseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Course deleted successfully", nil)
}

func mapCourseError(err error) error {
	switch {
	case errors.Is(err, course.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgCourseNotFound, nil, err)
	case errors.Is(err, usecase.ErrInvalidCourse):
		return middleware.NewAppError(fiber.StatusBadRequest, "Title and description are required", nil, err)
	default:
		return internalError(err)
	}
}
