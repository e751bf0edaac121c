package handler

import (
	"errors"

	"placement-prep/internal/delivery/http/dto"
	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/pkg/response"
	"placement-prep/internal/usecase"
	ucauth "placement-prep/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts the public auth endpoints; r is expected to be the /auth group.
func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req credentials
	if err := bindBody(c, &req, "Bad request"); err != nil {
		return err
	}

	usr, pair, err := h.uc.Register(c.Context(), ucauth.RegisterInput(req))
	if err != nil {
		return authError(err)
	}
	return response.Success(c, fiber.StatusCreated, "User registered", authResponse(usr, pair))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req credentials
	if err := bindBody(c, &req, "Bad request"); err != nil {
		return err
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return authError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(usr, pair))
}

// Refresh trades a refresh token, sent as a Bearer credential, for a new pair.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	pair, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return authError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, pair)
}

func authResponse(usr user.User, pair usecase.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		User:         dto.NewUserResponse(usr),
		Token:        pair.AccessToken,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

var authErrors = []struct {
	target  error
	status  int
	message string
}{
	{ucauth.ErrAlreadyRegistered, fiber.StatusConflict, "User already exists"},
	{ucauth.ErrInvalidCredentials, fiber.StatusBadRequest, "Invalid credentials."},
	{ucauth.ErrInvalidInput, fiber.StatusBadRequest, "Bad request"},
	{usecase.ErrRefreshTokenExpired, fiber.StatusUnauthorized, "Refresh token expired"},
	{usecase.ErrInvalidRefreshToken, fiber.StatusUnauthorized, "Invalid refresh token"},
	{usecase.ErrUnauthorized, fiber.StatusUnauthorized, "Unauthorized"},
}

func authError(err error) error {
	for _, m := range authErrors {
		if errors.Is(err, m.target) {
			return middleware.NewAppError(m.status, m.message, nil, err)
		}
	}
	return internalError(err)
}
