// Package testsupport provides shared helpers for package tests: an
// in-memory database with the full schema, fixture builders, and a fiber app
// with every route mounted.
package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linkhub/internal"
	"linkhub/internal/auth"
	"linkhub/internal/clicks"
	"linkhub/internal/config"
	"linkhub/internal/links"
	"linkhub/internal/profiles"
	"linkhub/internal/users"
)

// testDBCache caches test databases by root test name so setup helpers that
// capture the outer *testing.T still share one database across subtests.
var (
	testDBCache   = make(map[string]*gorm.DB)
	testDBCacheMu sync.Mutex
)

func allModels() []any {
	return []any{
		&users.User{},
		&profiles.Profile{},
		&links.Link{},
		&clicks.ClickEvent{},
	}
}

// SetupTestDB creates a test database with the full schema migrated. It uses
// a named in-memory database with cache=shared so multiple connections within
// a test see the same data.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	rootName := t.Name()
	if idx := strings.Index(rootName, "/"); idx > 0 {
		rootName = rootName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA busy_timeout = 5000")

	// A single connection keeps concurrent test writes serialized instead of
	// racing for the shared in-memory database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(allModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// GetLogger returns a quiet logger for tests.
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// CreateTestUser registers a user through the normal path, so the password
// hash is real and login works in handler tests.
func CreateTestUser(t *testing.T, db *gorm.DB, email, username string) *users.User {
	t.Helper()

	user, err := users.Register(db, users.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Username: username,
		Password: "password",
	})
	require.NoError(t, err)
	return user
}

// CreateTestProfile creates a profile owned by userID.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID, slug string) *profiles.Profile {
	t.Helper()

	profile, err := profiles.Create(db, userID, slug)
	require.NoError(t, err)
	return profile
}

// CreateTestLink adds a link to the profile through the normal path, so
// positions are assigned the way production assigns them.
func CreateTestLink(t *testing.T, db *gorm.DB, userID, profileID, title, url string) *links.Link {
	t.Helper()

	link, err := links.Add(db, userID, profileID, title, url, "")
	require.NoError(t, err)
	return link
}

// CreateClickEvent inserts a click event row directly, bypassing the
// transactional recorder, for tests that need control over timestamps.
func CreateClickEvent(t *testing.T, db *gorm.DB, linkID, ip, country, device, browser, referer string, clickedAt time.Time) {
	t.Helper()

	event := clicks.ClickEvent{
		LinkID:    linkID,
		IPAddress: ip,
		Country:   country,
		City:      "Unknown",
		Device:    device,
		Browser:   browser,
		Referer:   referer,
		ClickedAt: clickedAt,
	}
	require.NoError(t, db.Create(&event).Error)
}

// TestConfig returns a config suitable for handler tests.
func TestConfig() *config.Config {
	cfg := config.GetConfig()
	cfg.Environment = config.Test
	return cfg
}

// CreateTestApp creates a fiber app with all routes mounted over the given
// database.
func CreateTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New()
	internal.MountRoutes(app, db, GetLogger(), TestConfig())
	return app
}

// AuthToken issues a bearer token for userID using the test config secret.
func AuthToken(t *testing.T, userID string) string {
	t.Helper()

	cfg := TestConfig()
	token, err := auth.GenerateToken(cfg.JWTSecret, userID, cfg.GetTokenTTL())
	require.NoError(t, err)
	return token
}
