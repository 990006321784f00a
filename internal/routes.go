package internal

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"linkhub/internal/config"
	"linkhub/internal/http"
	"linkhub/internal/http/middleware"
)

// publicCORSConfig is the permissive CORS setup shared by every public
// endpoint. Redirects and public pages are meant to be embedded and linked
// from anywhere.
var publicCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization, Referer, User-Agent",
}

// MountRoutes wires every route onto the fiber app. Exported separately from
// the Application so tests can mount routes on an in-memory database.
func MountRoutes(app *fiber.App, db *gorm.DB, logger *slog.Logger, cfg *config.Config) {
	h := http.NewHandler(db, logger, cfg)

	// Rate limiting only applies in production; in development and test it
	// would interfere with rapid requests.
	conditionalRateLimiter := func(limit fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if cfg.IsProduction() {
				return limit(c)
			}
			return c.Next()
		}
	}

	// Redirects take real traffic; 120/min per IP keeps scrapers out without
	// touching legitimate visitors.
	publicRateLimiter := conditionalRateLimiter(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// Stricter cap on auth endpoints against brute force login attempts.
	authRateLimiter := conditionalRateLimiter(limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}))

	requireAuth := middleware.RequireAuth(cfg, logger)
	publicCORS := cors.New(publicCORSConfig)

	// === HEALTH ===
	app.Get("/_health", h.Health)
	app.Head("/_health", h.Health)

	// === PUBLIC ROUTES ===
	app.Get("/l/:id", publicCORS, publicRateLimiter, h.Redirect)
	app.Get("/u/:slug", publicCORS, publicRateLimiter, h.PublicProfile)

	// === AUTH ROUTES ===
	app.Post("/api/auth/register", authRateLimiter, h.RegisterUser)
	app.Post("/api/auth/login", authRateLimiter, h.Login)
	app.Get("/api/auth/me", requireAuth, h.CurrentUser)
	app.Put("/api/auth/update", requireAuth, h.UpdateAccount)

	// === PROFILE ROUTES ===
	app.Post("/api/profiles", requireAuth, h.CreateProfile)
	app.Get("/api/profiles", requireAuth, h.ListProfiles)
	app.Put("/api/profiles/:id", requireAuth, h.UpdateProfile)
	app.Delete("/api/profiles/:id", requireAuth, h.DeleteProfile)

	// === LINK ROUTES ===
	// reorder is registered before :id so fiber does not swallow it
	app.Put("/api/links/reorder", requireAuth, h.ReorderLinks)
	app.Post("/api/links", requireAuth, h.AddLink)
	app.Get("/api/links", requireAuth, h.ListLinks)
	app.Get("/api/links/:id", requireAuth, h.GetLink)
	app.Put("/api/links/:id", requireAuth, h.UpdateLink)
	app.Delete("/api/links/:id", requireAuth, h.DeleteLink)
	app.Get("/api/links/:id/analytics", requireAuth, h.LinkAnalytics)

	// === DASHBOARD ROUTES ===
	app.Get("/api/dashboard/analytics", requireAuth, h.DashboardAnalytics)
}
