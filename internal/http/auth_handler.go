package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkhub/internal/auth"
	"linkhub/internal/users"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterUser serves POST /api/auth/register.
func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Username == "" || req.Password == "" {
		return failJSON(c, fiber.StatusBadRequest, "All fields are required")
	}

	user, err := users.Register(h.db, users.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			return failJSON(c, fiber.StatusConflict, "Email or username already taken")
		}
		return h.serverError(c, "register", err)
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.GetTokenTTL())
	if err != nil {
		return h.serverError(c, "register", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login serves POST /api/auth/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := users.Authenticate(h.db, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			return failJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return h.serverError(c, "login", err)
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.GetTokenTTL())
	if err != nil {
		return h.serverError(c, "login", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// CurrentUser serves GET /api/auth/me.
func (h *Handler) CurrentUser(c *fiber.Ctx) error {
	user, err := users.FindByID(h.db, currentUserID(c))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return failJSON(c, fiber.StatusNotFound, "User not found")
		}
		return h.serverError(c, "current_user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type updateAccountRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Username     *string `json:"username"`
	ProfileImage *string `json:"profile_image"`
}

// UpdateAccount serves PUT /api/auth/update. Absent fields are left as-is.
func (h *Handler) UpdateAccount(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return failJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := users.UpdateAccount(h.db, currentUserID(c), users.UpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			return failJSON(c, fiber.StatusConflict, "Email or username already taken")
		}
		return h.serverError(c, "update_account", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
