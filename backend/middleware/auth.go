package middleware

import (
	"errors"

	"formadapt/backend/config"
	"formadapt/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer credential and stores the identity in
// the request locals. Missing, invalid and expired tokens all reject with
// 401, with distinct messages.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrMissingToken):
				return utils.Unauthorized(c, "Missing authorization token")
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.Unauthorized(c, "Token expired")
			default:
				return utils.Unauthorized(c, "Invalid token")
			}
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// AdminMiddleware requires the admin role on top of a valid identity.
// Insufficient privilege is 403, distinct from the 401 of a missing or bad
// credential.
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			claims, err := utils.ExtractClaimsFromToken(c, cfg)
			if err != nil {
				return utils.Unauthorized(c, "Unauthorized")
			}
			c.Locals("user_id", claims.UserID)
			c.Locals("role", claims.Role)
			role = claims.Role
		}

		if role != "admin" {
			return utils.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated account id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}
