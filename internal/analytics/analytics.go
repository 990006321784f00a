// Package analytics computes read-only aggregations over the click-event
// log for the dashboard and per-link views.
//
// All counts are derived from click_events; the denormalized click_count on
// links is only consulted for the top-links ranking, where it matches the
// event table by construction. Day buckets and "today" use UTC calendar
// dates (timestamps are recorded in UTC; no per-user timezone math).
package analytics

// DayCount is one day of the trailing click series. Days without events are
// omitted rather than zero-filled.
type DayCount struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// LinkCount ranks a link by total clicks.
type LinkCount struct {
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// DeviceCount is a per-device-type click count.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

// CountryCount is a per-country click count. Country carries a display name
// resolved from the stored ISO code.
type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// ReferrerCount is a per-referrer click count.
type ReferrerCount struct {
	Referer string `json:"referer"`
	Count   int64  `json:"count"`
}

// BrowserCount is a per-browser click count.
type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// Summary holds the metrics shared by the dashboard and per-link views.
type Summary struct {
	TotalClicks    int64           `json:"totalClicks"`
	UniqueVisitors int64           `json:"uniqueVisitors"`
	TodayClicks    int64           `json:"todayClicks"`
	Last7Days      []DayCount      `json:"last7Days"`
	Devices        []DeviceCount   `json:"devices"`
	TopCountries   []CountryCount  `json:"topCountries"`
	Referrers      []ReferrerCount `json:"referrers"`
}

// DashboardSummary is the owner dashboard payload, adding the per-link
// ranking across the owner's full link set.
type DashboardSummary struct {
	Summary
	TopLinks []LinkCount `json:"topLinks"`
}

// LinkSummary is the single-link payload, adding the browser breakdown.
type LinkSummary struct {
	Summary
	Browsers []BrowserCount `json:"browsers"`
}

// emptySummary returns the zeroed result shape served when the scope holds
// no links.
func emptySummary() Summary {
	return Summary{
		Last7Days:    []DayCount{},
		Devices:      []DeviceCount{},
		TopCountries: []CountryCount{},
		Referrers:    []ReferrerCount{},
	}
}
