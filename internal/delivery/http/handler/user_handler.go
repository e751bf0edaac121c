package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/dto"
	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	mount(r, fiber.MethodGet, "/users/me", g.Auth, h.GetMe)
	r.Get("/leaderboard", h.Leaderboard)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	prof, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return internalError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(prof))
}

func (h *UserHandler) Leaderboard(c fiber.Ctx) error {
	entries, err := h.uc.Leaderboard(c.Context())
	if err != nil {
		return internalError(err)
	}
	if entries == nil {
		entries = []user.LeaderboardEntry{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, entries)
}
