package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkhub/internal/clicks"
	"linkhub/internal/links"
	"linkhub/internal/pkg/visitor"
)

// Redirect serves GET /l/:id. It resolves an active link, records the click
// with its visitor metadata, and issues a 302 to the destination. Missing or
// deactivated links return a plain 404 and leave the counters untouched.
func (h *Handler) Redirect(c *fiber.Ctx) error {
	link, err := links.FindActive(h.db.WithContext(c.UserContext()), c.Params("id"))
	if err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Link not found")
		}
		h.logger.Error("Redirect lookup failed",
			"link_id", c.Params("id"),
			"error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}

	visit := visitor.Resolve(clientIP(c), c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderReferer))

	// Counter increment and event insert run in one transaction, so a
	// failure here means nothing was recorded and the visitor gets a 500
	// rather than an untracked redirect.
	if err := clicks.Record(h.db, h.logger, link.ID, visit); err != nil {
		h.logger.Error("Click recording failed",
			"link_id", link.ID,
			"error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}

	return c.Redirect(link.URL, fiber.StatusFound)
}
