package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkhub/internal/analytics"
	"linkhub/internal/links"
	"linkhub/internal/profiles"
)

type addLinkRequest struct {
	ProfileID string `json:"profile_id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Platform  string `json:"platform"`
}

// AddLink serves POST /api/links. Title and URL may be empty so the UI can
// create a draft the owner fills in afterwards.
func (h *Handler) AddLink(c *fiber.Ctx) error {
	var req addLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ProfileID == "" {
		return failJSON(c, fiber.StatusBadRequest, "Profile ID is required")
	}

	userID := currentUserID(c)

	// Adding a link to someone else's profile must fail like any other
	// ownership miss.
	if _, err := profiles.FindOwned(h.db, req.ProfileID, userID); err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Profile not found")
		}
		return h.serverError(c, "add_link", err)
	}

	link, err := links.Add(h.db, userID, req.ProfileID, req.Title, req.URL, req.Platform)
	if err != nil {
		return h.serverError(c, "add_link", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"link":    link,
	})
}

// ListLinks serves GET /api/links?profile_id=... in display order.
func (h *Handler) ListLinks(c *fiber.Ctx) error {
	profileID := c.Query("profile_id")
	if profileID == "" {
		return failJSON(c, fiber.StatusBadRequest, "Profile ID is required")
	}

	result, err := links.ListByProfile(h.db, currentUserID(c), profileID)
	if err != nil {
		return h.serverError(c, "list_links", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"links":   result,
	})
}

// GetLink serves GET /api/links/:id.
func (h *Handler) GetLink(c *fiber.Ctx) error {
	link, err := links.FindOwned(h.db, c.Params("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Link not found")
		}
		return h.serverError(c, "get_link", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"link":    link,
	})
}

type updateLinkRequest struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	IsActive *bool   `json:"is_active"`
	Platform *string `json:"platform"`
}

// UpdateLink serves PUT /api/links/:id.
func (h *Handler) UpdateLink(c *fiber.Ctx) error {
	var req updateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	link, err := links.Update(h.db, c.Params("id"), currentUserID(c), links.UpdateInput{
		Title:    req.Title,
		URL:      req.URL,
		IsActive: req.IsActive,
		Platform: req.Platform,
	})
	if err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Link not found")
		}
		return h.serverError(c, "update_link", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"link":    link,
	})
}

// DeleteLink serves DELETE /api/links/:id.
func (h *Handler) DeleteLink(c *fiber.Ctx) error {
	if err := links.Delete(h.db, c.Params("id"), currentUserID(c)); err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Link not found")
		}
		return h.serverError(c, "delete_link", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Link deleted",
	})
}

type reorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

// ReorderLinks serves PUT /api/links/reorder. Each link's position becomes
// its index in the submitted array; ids the caller does not own are skipped.
func (h *Handler) ReorderLinks(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.OrderedIDs) == 0 {
		return failJSON(c, fiber.StatusBadRequest, "Link IDs are required")
	}

	if err := links.Reorder(h.db, req.OrderedIDs, currentUserID(c)); err != nil {
		return h.serverError(c, "reorder_links", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Links reordered",
	})
}

// LinkAnalytics serves GET /api/links/:id/analytics. Ownership is checked
// before any aggregation runs.
func (h *Handler) LinkAnalytics(c *fiber.Ctx) error {
	userID := currentUserID(c)

	link, err := links.FindOwned(h.db, c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Link not found")
		}
		return h.serverError(c, "link_analytics", err)
	}

	summary, err := analytics.FetchLinkSummary(c.UserContext(), h.db, h.logger, link.ID)
	if err != nil {
		return h.serverError(c, "link_analytics", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"analytics": summary,
	})
}
