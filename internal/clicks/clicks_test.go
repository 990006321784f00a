package clicks_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkhub/internal/clicks"
	"linkhub/internal/links"
	"linkhub/internal/pkg/visitor"
	"linkhub/internal/testsupport"
)

func testVisit(ip string) visitor.Visit {
	return visitor.Visit{
		IPAddress: ip,
		Country:   "US",
		City:      "Portland",
		Device:    visitor.DeviceDesktop,
		Browser:   "Chrome",
		Referer:   visitor.DirectReferrer,
	}
}

func TestRecord(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	logger := testsupport.GetLogger()
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "clicks-page")

	t.Run("increments counter and appends event together", func(t *testing.T) {
		link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Tracked", "https://example.com")

		require.NoError(t, clicks.Record(db, logger, link.ID, testVisit("203.0.113.5")))

		reloaded, err := links.FindOwned(db, link.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), reloaded.ClickCount)

		count, err := clicks.CountByLink(db, link.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("stores the visit metadata", func(t *testing.T) {
		link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Meta", "https://example.com")

		require.NoError(t, clicks.Record(db, logger, link.ID, testVisit("203.0.113.9")))

		var event clicks.ClickEvent
		require.NoError(t, db.Where("link_id = ?", link.ID).First(&event).Error)
		assert.Equal(t, "203.0.113.9", event.IPAddress)
		assert.Equal(t, "US", event.Country)
		assert.Equal(t, visitor.DeviceDesktop, event.Device)
		assert.Equal(t, "Chrome", event.Browser)
		assert.Equal(t, visitor.DirectReferrer, event.Referer)
		assert.False(t, event.ClickedAt.IsZero())
	})

	t.Run("fails for a missing link and records nothing", func(t *testing.T) {
		err := clicks.Record(db, logger, "no-such-link", testVisit("203.0.113.5"))
		require.Error(t, err)

		count, err := clicks.CountByLink(db, "no-such-link")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestRecordConcurrent(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	logger := testsupport.GetLogger()
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "owner")
	profile := testsupport.CreateTestProfile(t, db, user.ID, "burst-page")
	link := testsupport.CreateTestLink(t, db, user.ID, profile.ID, "Hot", "https://example.com")

	const n = 100

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- clicks.Record(db, logger, link.ID, testVisit("203.0.113.5"))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// No lost updates: counter and event count both land on exactly n.
	reloaded, err := links.FindOwned(db, link.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), reloaded.ClickCount)

	count, err := clicks.CountByLink(db, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}
