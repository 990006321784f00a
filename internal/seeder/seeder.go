// Package seeder populates a development database with a demo account,
// sample profiles and links, and a month of randomized click traffic.
package seeder

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"linkhub/internal/clicks"
	"linkhub/internal/links"
	"linkhub/internal/pkg/visitor"
	"linkhub/internal/profiles"
	"linkhub/internal/users"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password"

	// Total click events generated across all demo links.
	clickCount = 2000
)

// Run seeds the demo account. Re-running against an already seeded database
// reuses the existing account and adds more traffic.
func Run(db *gorm.DB, logger *slog.Logger) error {
	start := time.Now()
	logger.Info("Starting database seeding...", slog.Int("clickCount", clickCount))

	user, err := seedUser(db, logger)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	profile, err := seedProfile(db, logger, user.ID)
	if err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}

	seeded, err := seedLinks(db, logger, user.ID, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to seed links: %w", err)
	}

	if err := generateClicks(db, logger, seeded); err != nil {
		return fmt.Errorf("failed to generate clicks: %w", err)
	}

	logger.Info("Seeding completed successfully", slog.Duration("elapsed", time.Since(start)))
	return nil
}

func seedUser(db *gorm.DB, logger *slog.Logger) (*users.User, error) {
	var existing users.User
	err := db.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		logger.Info("Demo user already exists", slog.String("email", existing.Email))
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	logger.Info("Creating demo user")
	user, err := users.Register(db, users.RegisterInput{
		Name:     "Demo User",
		Email:    demoEmail,
		Username: "demo",
		Password: demoPassword,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Demo user created", slog.String("id", user.ID))
	return user, nil
}

func seedProfile(db *gorm.DB, logger *slog.Logger, userID string) (*profiles.Profile, error) {
	profs, err := profiles.ListByUser(db, userID)
	if err != nil {
		return nil, err
	}
	if len(profs) > 0 {
		logger.Info("Demo profile already exists", slog.String("slug", profs[0].Slug))
		return &profs[0], nil
	}

	profile, err := profiles.Create(db, userID, "demo")
	if err != nil {
		return nil, err
	}

	return profiles.Update(db, profile.ID, userID, profiles.UpdateInput{
		Bio: ptr("Everything I make, in one place."),
	})
}

func seedLinks(db *gorm.DB, logger *slog.Logger, userID, profileID string) ([]links.Link, error) {
	existing, err := links.ListByProfile(db, userID, profileID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Info("Demo links already exist", slog.Int("count", len(existing)))
		return existing, nil
	}

	samples := []struct {
		title, url, platform string
	}{
		{"My Portfolio", "https://example.com", "website"},
		{"YouTube Channel", "https://youtube.com/@demo", "youtube"},
		{"Latest Album", "https://open.spotify.com/artist/demo", "spotify"},
		{"Instagram", "https://instagram.com/demo", "instagram"},
		{"Newsletter", "https://example.com/newsletter", "website"},
	}

	var seeded []links.Link
	for _, s := range samples {
		link, err := links.Add(db, userID, profileID, s.title, s.url, s.platform)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, *link)
	}
	logger.Info("Demo links created", slog.Int("count", len(seeded)))
	return seeded, nil
}

// generateClicks inserts randomized click events over the last 30 days and
// rewrites each link's counter from the authoritative event count.
func generateClicks(db *gorm.DB, logger *slog.Logger, seeded []links.Link) error {
	if len(seeded) == 0 {
		return nil
	}

	ipPool := generateIPPool(100)
	userAgents := sampleUserAgents()
	referrers := sampleReferrers()

	events := make([]clicks.ClickEvent, 0, clickCount)
	for i := 0; i < clickCount; i++ {
		link := seeded[rand.Intn(len(seeded))]
		v := visitor.Resolve(
			ipPool[rand.Intn(len(ipPool))],
			userAgents[rand.Intn(len(userAgents))],
			referrers[rand.Intn(len(referrers))],
		)
		clickedAt := time.Now().UTC().Add(-time.Duration(rand.Intn(30*24*60*60)) * time.Second)

		events = append(events, clicks.ClickEvent{
			LinkID:    link.ID,
			IPAddress: v.IPAddress,
			Country:   v.Country,
			City:      v.City,
			Device:    v.Device,
			Browser:   v.Browser,
			Referer:   v.Referer,
			ClickedAt: clickedAt,
		})
	}

	if err := db.CreateInBatches(events, 200).Error; err != nil {
		return err
	}

	// Counters are display caches; rebuild them from the events just written.
	err := db.Exec(`
		UPDATE links
		SET click_count = (
			SELECT COUNT(*) FROM click_events WHERE click_events.link_id = links.id
		)
	`).Error
	if err != nil {
		return err
	}

	logger.Info("Click events generated", slog.Int("count", len(events)))
	return nil
}

func generateIPPool(count int) []string {
	seen := make(map[string]bool)
	var ips []string
	for len(ips) < count {
		ip := fmt.Sprintf("%d.%d.%d.%d", rand.Intn(255)+1, rand.Intn(256), rand.Intn(256), rand.Intn(256))
		if !seen[ip] {
			seen[ip] = true
			ips = append(ips, ip)
		}
	}
	return ips
}

func sampleUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 16_1_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Mobile/15E148 Safari/605.1",
		"Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Mobile Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
		"Mozilla/5.0 (iPad; CPU OS 16_1_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Mobile/15E148 Safari/605.1",
	}
}

func sampleReferrers() []string {
	return []string{
		"", // Direct visit
		"https://google.com",
		"https://instagram.com",
		"https://twitter.com",
		"https://tiktok.com",
		"https://youtube.com",
	}
}

func ptr(s string) *string {
	return &s
}
