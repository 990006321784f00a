package http_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/clicks"
	"linkhub/internal/links"
	"linkhub/internal/testsupport"
)

func TestRedirect(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)

	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "redirect-page")

	t.Run("redirects and records the click", func(t *testing.T) {
		link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Target", "https://example.com/target")

		req := httptest.NewRequest("GET", "/l/"+link.ID, nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.5, 70.41.3.18")
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36")
		req.Header.Set("Referer", "https://instagram.com")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://example.com/target", resp.Header.Get("Location"))

		reloaded, err := links.FindOwned(db, link.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), reloaded.ClickCount)

		var event clicks.ClickEvent
		require.NoError(t, db.Where("link_id = ?", link.ID).First(&event).Error)
		assert.Equal(t, "203.0.113.5", event.IPAddress)
		assert.Equal(t, "desktop", event.Device)
		assert.Equal(t, "Chrome", event.Browser)
		assert.Equal(t, "https://instagram.com", event.Referer)
	})

	t.Run("missing link returns plain 404 without recording", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/l/no-such-link", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "Link not found", string(body))

		count, err := clicks.CountByLink(db, "no-such-link")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("inactive link returns 404 and stays uncounted", func(t *testing.T) {
		link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Disabled", "https://example.com/off")
		inactive := false
		_, err := links.Update(db, link.ID, user.ID, links.UpdateInput{IsActive: &inactive})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/l/"+link.ID, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		reloaded, err := links.FindOwned(db, link.ID, user.ID)
		require.NoError(t, err)
		assert.Zero(t, reloaded.ClickCount)
	})

	t.Run("headerless request still redirects with defaults", func(t *testing.T) {
		link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Bare", "https://example.com/bare")

		req := httptest.NewRequest("GET", "/l/"+link.ID, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)

		var event clicks.ClickEvent
		require.NoError(t, db.Where("link_id = ?", link.ID).First(&event).Error)
		assert.Equal(t, "desktop", event.Device)
		assert.Equal(t, "Unknown", event.Browser)
		assert.Equal(t, "Direct", event.Referer)
	})
}
