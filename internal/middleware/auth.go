// Package middleware provides HTTP middleware for the fiber app:
// JWT validation and admin gating.
package middleware

import (
	"strings"

	"paylink/internal/models"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the Bearer token and stores the claims in the request
// context.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.Unauthorized(c, "missing authorization header")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.Unauthorized(c, "invalid authorization format")
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return utils.Unauthorized(c, "invalid token")
		}

		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		return c.Next()
	}
}

// AdminOnly rejects requests whose claims do not carry the admin role.
// Must run after Auth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return utils.Unauthorized(c, "missing claims")
		}
		if !claims.IsAdmin() {
			return utils.Error(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
