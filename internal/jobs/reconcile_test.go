package jobs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/database"
	"linkhub/internal/jobs"
	"linkhub/internal/links"
	"linkhub/internal/testsupport"
)

func TestReconcileJob(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	logger := testsupport.GetLogger()
	dbManager := database.NewDBManagerWithConnection(db, logger)

	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "reconcile-page")

	drifted := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Drifted", "https://example.com/d")
	honest := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Honest", "https://example.com/h")

	now := time.Now().UTC()
	testsupport.CreateClickEvent(t, db, drifted.ID, "203.0.113.1", "US", "desktop", "Chrome", "Direct", now)
	testsupport.CreateClickEvent(t, db, drifted.ID, "203.0.113.2", "US", "mobile", "Safari", "Direct", now)
	testsupport.CreateClickEvent(t, db, honest.ID, "203.0.113.3", "US", "desktop", "Chrome", "Direct", now)

	// The drifted link's counter disagrees with the event log; the honest
	// one matches it.
	require.NoError(t, db.Exec("UPDATE links SET click_count = 99 WHERE id = ?", drifted.ID).Error)
	require.NoError(t, db.Exec("UPDATE links SET click_count = 1 WHERE id = ?", honest.ID).Error)

	require.NoError(t, jobs.NewReconcileJob(dbManager, logger).Run())

	repaired, err := links.FindOwned(db, drifted.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repaired.ClickCount)

	untouched, err := links.FindOwned(db, honest.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), untouched.ClickCount)
}

func TestReconcileJobZeroesOrphanedCounters(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	logger := testsupport.GetLogger()
	dbManager := database.NewDBManagerWithConnection(db, logger)

	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "orphan-page")
	link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "No Events", "https://example.com")

	require.NoError(t, db.Exec("UPDATE links SET click_count = 7 WHERE id = ?", link.ID).Error)

	require.NoError(t, jobs.NewReconcileJob(dbManager, logger).Run())

	reloaded, err := links.FindOwned(db, link.ID, user.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.ClickCount)
}
