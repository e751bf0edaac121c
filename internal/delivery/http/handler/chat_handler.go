package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/chat"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	mount(r, fiber.MethodPost, "/chat", g.Auth, h.Send)
	mount(r, fiber.MethodGet, "/chat/history", g.Auth, h.History)
}

func (h *ChatHandler) Send(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := bindBody(c, &req, "Invalid request payload"); err != nil {
		return err
	}

	reply, err := h.uc.Send(c.Context(), userID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyMessage):
			return middleware.NewAppError(fiber.StatusBadRequest, "Message is required", nil, err)
		case errors.Is(err, user.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		case errors.Is(err, usecase.ErrChatBackendFailure):
			return middleware.NewAppError(fiber.StatusBadGateway, "", nil, err)
		default:
			return internalError(err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, chatResponse{Response: reply})
}

func (h *ChatHandler) History(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	out, err := h.uc.History(c.Context(), userID)
	if err != nil {
		return internalError(err)
	}
	if out == nil {
		out = []chat.Message{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
