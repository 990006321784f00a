package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkhub/internal/profiles"
)

type createProfileRequest struct {
	Slug string `json:"slug"`
}

// CreateProfile serves POST /api/profiles.
func (h *Handler) CreateProfile(c *fiber.Ctx) error {
	var req createProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Slug == "" {
		return failJSON(c, fiber.StatusBadRequest, "Slug is required")
	}

	profile, err := profiles.Create(h.db, currentUserID(c), req.Slug)
	if err != nil {
		if errors.Is(err, profiles.ErrSlugTaken) {
			return failJSON(c, fiber.StatusConflict, "This URL is already taken")
		}
		return h.serverError(c, "create_profile", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

// ListProfiles serves GET /api/profiles.
func (h *Handler) ListProfiles(c *fiber.Ctx) error {
	result, err := profiles.ListByUser(h.db, currentUserID(c))
	if err != nil {
		return h.serverError(c, "list_profiles", err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"profiles": result,
	})
}

type updateProfileRequest struct {
	Appearance   *profiles.AppearanceSettings `json:"appearance_settings"`
	ProfileImage *string                      `json:"profile_image"`
	Bio          *string                      `json:"bio"`
}

// UpdateProfile serves PUT /api/profiles/:id. The appearance payload replaces
// the stored settings wholesale when present.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := profiles.Update(h.db, c.Params("id"), currentUserID(c), profiles.UpdateInput{
		Appearance:   req.Appearance,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
	})
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Profile not found")
		}
		return h.serverError(c, "update_profile", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

// DeleteProfile serves DELETE /api/profiles/:id.
func (h *Handler) DeleteProfile(c *fiber.Ctx) error {
	if err := profiles.Delete(h.db, c.Params("id"), currentUserID(c)); err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Profile not found")
		}
		return h.serverError(c, "delete_profile", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile deleted",
	})
}

// PublicProfile serves GET /u/:slug, the unauthenticated page payload.
func (h *Handler) PublicProfile(c *fiber.Ctx) error {
	profile, err := profiles.GetPublicProfile(h.db.WithContext(c.UserContext()), c.Params("slug"))
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return failJSON(c, fiber.StatusNotFound, "Profile not found")
		}
		return h.serverError(c, "public_profile", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}
