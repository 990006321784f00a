package http

import "github.com/gofiber/fiber/v2"

// Health serves GET /_health for load balancer probes.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
