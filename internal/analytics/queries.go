package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// topNLimit caps the country/referrer/top-link breakdowns.
const topNLimit = 5

// GetTotalClicks counts all click events for the given link set.
func GetTotalClicks(db *gorm.DB, linkIDs []string) (int64, error) {
	var count int64
	err := db.Raw(`SELECT COUNT(*) FROM click_events WHERE link_id IN ?`, linkIDs).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting total clicks: %w", err)
	}
	return count, nil
}

// GetUniqueVisitors counts distinct client IPs across the link set.
func GetUniqueVisitors(db *gorm.DB, linkIDs []string) (int64, error) {
	var count int64
	err := db.Raw(`SELECT COUNT(DISTINCT ip_address) FROM click_events WHERE link_id IN ?`, linkIDs).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting unique visitors: %w", err)
	}
	return count, nil
}

// GetTodayClicks counts events recorded on the current UTC calendar date.
func GetTodayClicks(db *gorm.DB, linkIDs []string) (int64, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)

	var count int64
	err := db.Raw(`
        SELECT COUNT(*) FROM click_events
        WHERE link_id IN ?
        AND clicked_at >= ? AND clicked_at < ?`,
		linkIDs, dayStart, dayStart.Add(24*time.Hour)).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting today clicks: %w", err)
	}
	return count, nil
}

// GetLast7Days returns per-day click counts for the trailing 7-day window
// (inclusive of today), ascending by date. Days with no events are omitted.
func GetLast7Days(db *gorm.DB, linkIDs []string) ([]DayCount, error) {
	windowStart := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -6)

	rows := []DayCount{}
	err := db.Raw(`
        SELECT strftime('%Y-%m-%d', clicked_at) AS date,
               COUNT(*) AS clicks
        FROM click_events
        WHERE link_id IN ?
        AND clicked_at >= ?
        GROUP BY date
        ORDER BY date ASC`,
		linkIDs, windowStart).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching daily clicks: %w", err)
	}
	return rows, nil
}

// GetTopLinks ranks the user's links by click count, highest first. The
// outer join keeps zero-click links eligible for the ranking.
func GetTopLinks(db *gorm.DB, userID string) ([]LinkCount, error) {
	rows := []LinkCount{}
	err := db.Raw(`
        SELECT l.title AS title, COUNT(c.id) AS clicks
        FROM links l
        LEFT JOIN click_events c ON c.link_id = l.id
        WHERE l.user_id = ?
        GROUP BY l.id
        ORDER BY clicks DESC
        LIMIT ?`,
		userID, topNLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching top links: %w", err)
	}
	return rows, nil
}

// GetDeviceBreakdown groups clicks by device type. Order is unspecified.
func GetDeviceBreakdown(db *gorm.DB, linkIDs []string) ([]DeviceCount, error) {
	rows := []DeviceCount{}
	err := db.Raw(`
        SELECT device, COUNT(*) AS count
        FROM click_events
        WHERE link_id IN ?
        GROUP BY device`,
		linkIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching device breakdown: %w", err)
	}
	return rows, nil
}

// GetTopCountries groups clicks by country, highest count first.
func GetTopCountries(db *gorm.DB, linkIDs []string) ([]CountryCount, error) {
	rows := []CountryCount{}
	err := db.Raw(`
        SELECT country, COUNT(*) AS count
        FROM click_events
        WHERE link_id IN ?
        GROUP BY country
        ORDER BY count DESC
        LIMIT ?`,
		linkIDs, topNLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching top countries: %w", err)
	}
	return convertCountryNames(rows), nil
}

// GetTopReferrers groups clicks by referrer, highest count first.
func GetTopReferrers(db *gorm.DB, linkIDs []string) ([]ReferrerCount, error) {
	rows := []ReferrerCount{}
	err := db.Raw(`
        SELECT referer, COUNT(*) AS count
        FROM click_events
        WHERE link_id IN ?
        GROUP BY referer
        ORDER BY count DESC
        LIMIT ?`,
		linkIDs, topNLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching top referrers: %w", err)
	}
	return rows, nil
}

// GetBrowserBreakdown groups clicks by browser name.
func GetBrowserBreakdown(db *gorm.DB, linkIDs []string) ([]BrowserCount, error) {
	rows := []BrowserCount{}
	err := db.Raw(`
        SELECT browser, COUNT(*) AS count
        FROM click_events
        WHERE link_id IN ?
        GROUP BY browser`,
		linkIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching browser breakdown: %w", err)
	}
	return rows, nil
}
