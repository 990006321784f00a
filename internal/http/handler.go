// Package http contains the fiber handlers for the public and admin APIs.
package http

import (
	"log/slog"
	"net"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linkhub/internal/config"
	"linkhub/internal/pkg/visitor"
)

// Handler bundles the dependencies every route needs. It is constructed once
// at startup with the shared storage handle - no package-level state.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	cfg    *config.Config
}

// NewHandler creates the route handler set.
func NewHandler(db *gorm.DB, logger *slog.Logger, cfg *config.Config) *Handler {
	return &Handler{db: db, logger: logger, cfg: cfg}
}

// currentUserID returns the authenticated user id placed by the auth
// middleware.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

// clientIP derives the visitor address: first X-Forwarded-For entry, then
// the transport peer address, then empty. IPv4-mapped IPv6 prefixes are
// stripped.
func clientIP(c *fiber.Ctx) string {
	remote := ""
	if addr := c.Context().RemoteAddr(); addr != nil {
		remote = addr.String()
		if host, _, err := net.SplitHostPort(remote); err == nil {
			remote = host
		}
	}
	return visitor.ClientIP(c.Get(fiber.HeaderXForwardedFor), remote)
}

// failJSON writes the error envelope the admin UI expects.
func failJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// serverError logs the underlying failure and returns the generic envelope;
// internals are never surfaced to the caller.
func (h *Handler) serverError(c *fiber.Ctx, action string, err error) error {
	h.logger.Error("Request failed",
		slog.String("action", action),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return failJSON(c, fiber.StatusInternalServerError, "Server error")
}
