package http

import (
	"github.com/gofiber/fiber/v2"

	"linkhub/internal/analytics"
)

// DashboardAnalytics serves GET /api/dashboard/analytics, the account-wide
// summary across every link the user owns.
func (h *Handler) DashboardAnalytics(c *fiber.Ctx) error {
	summary, err := analytics.FetchDashboardSummary(c.UserContext(), h.db, h.logger, currentUserID(c))
	if err != nil {
		return h.serverError(c, "dashboard_analytics", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"analytics": summary,
	})
}
