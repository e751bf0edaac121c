package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/interview"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const msgSlotUnavailable = "Slot is not available."

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

type slotRequest struct {
	StartTime string `json:"startTime"`
	Count     int    `json:"count"`
}

type createSlotsRequest struct {
	Slots           []slotRequest `json:"slots"`
	DurationMinutes int           `json:"durationMinutes"`
}

type bookingRequest struct {
	SlotID string `json:"slotId"`
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	mount(r, fiber.MethodPost, "/slots", g.Admin, h.CreateSlots)
	mount(r, fiber.MethodGet, "/get-interviews", g.Auth, h.Available)
	mount(r, fiber.MethodPost, "/bookings", g.Auth, h.Book)
	mount(r, fiber.MethodGet, "/bookings/me", g.Auth, h.MyBookings)
}

func (h *InterviewHandler) CreateSlots(c fiber.Ctx) error {
	var req createSlotsRequest
	if err := bindBody(c, &req, "Invalid input"); err != nil {
		return err
	}

	in := usecase.CreateSlotsInput{DurationMinutes: req.DurationMinutes}
	if req.Slots != nil {
		in.Slots = make([]usecase.SlotRequest, 0, len(req.Slots))
		for _, s := range req.Slots {
			in.Slots = append(in.Slots, usecase.SlotRequest{StartTime: s.StartTime, Count: s.Count})
		}
	}

	out, err := h.uc.CreateSlots(c.Context(), in)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSlotRequest) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input: need slots array and durationMinutes", nil, err)
		}
		return internalError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Slots created", out)
}

func (h *InterviewHandler) Available(c fiber.Ctx) error {
	out, err := h.uc.AvailableSlots(c.Context())
	if err != nil {
		return internalError(err)
	}
	if out == nil {
		out = []interview.Slot{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *InterviewHandler) Book(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgSlotUnavailable, nil, err)
	}

	out, err := h.uc.Book(c.Context(), userID, slotID)
	if err != nil {
		if errors.Is(err, interview.ErrSlotUnavailable) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgSlotUnavailable, nil, err)
		}
		return internalError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Booking confirmed", out)
}

func (h *InterviewHandler) MyBookings(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	out, err := h.uc.MyBookings(c.Context(), userID)
	if err != nil {
		return internalError(err)
	}
	if out == nil {
		out = []interview.BookingDetail{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
