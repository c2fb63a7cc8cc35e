package middleware

import (
	"strings"

	"bid-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

// Locals keys populated by the auth middleware. Handlers read the acting
// user from these and pass it DOWN as an explicit usecase argument; nothing
// below the delivery layer reads ambient auth state.
const (
	CtxUserIDKey   = "auth_user_id"
	CtxUserRoleKey = "auth_user_role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return NewAppError(fiber.StatusUnauthorized, "missing bearer token", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "invalid or expired token", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)
		return c.Next()
	}
}
