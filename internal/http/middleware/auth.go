// Package middleware holds the request middlewares shared across the admin
// API routes.
package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"linkhub/internal/auth"
	"linkhub/internal/config"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token and stores the user id in the
// request locals under "userID". Requests without a valid token get a 401
// envelope and never reach the handler.
func RequireAuth(cfg *config.Config, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return unauthorized(c)
		}

		userID, err := auth.ParseToken(cfg.JWTSecret, strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			logger.Debug("Rejected token", slog.Any("error", err))
			return unauthorized(c)
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Unauthorized",
	})
}
