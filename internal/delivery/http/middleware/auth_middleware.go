package middleware

import (
	"errors"
	"slices"
	"strings"

	"placement-prep/internal/domain/user"
	"placement-prep/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"

	// HeaderAuthToken carries a raw token for clients that predate Bearer auth.
	HeaderAuthToken = "x-auth-token"
)

const (
	msgNoToken      = "No token, authorization denied"
	msgTokenExpired = "Token expired"
	msgTokenInvalid = "Token is not valid"
	msgAccessDenied = "Access denied"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware accepts any valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return m.RequireRole()
}

// RequireRole authenticates and, when roles is non-empty, answers 403 for callers holding none of them.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, err := m.claims(c)
		if err != nil {
			return err
		}
		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)

		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			return NewAppError(fiber.StatusForbidden, msgAccessDenied, nil, nil)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(user.RoleAdmin)
}

func (m *AuthMiddleware) claims(c fiber.Ctx) (jwt.Claims, error) {
	token := requestToken(c)
	if token == "" {
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, msgNoToken, nil, nil)
	}

	claims, err := m.jwt.ValidateAccessToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, msgTokenExpired, nil, err)
	case err != nil:
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, msgTokenInvalid, nil, err)
	}
	return claims, nil
}

// requestToken prefers the Authorization header and falls back to HeaderAuthToken.
func requestToken(c fiber.Ctx) string {
	if token, ok := BearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		return token
	}
	return strings.TrimSpace(c.Get(HeaderAuthToken))
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value. The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
