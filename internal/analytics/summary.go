package analytics

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"linkhub/internal/links"
	"linkhub/internal/pkg/async"
)

// queryWorkers sizes the fan-out pool. The sub-queries are independent reads
// sharing one scope predicate, so they parallelize freely.
const queryWorkers = 4

// FetchDashboardSummary aggregates analytics over every link the user owns.
// An owner with no links gets the zero shape back without any event-table
// query. A failure in any sub-query fails the whole request.
func FetchDashboardSummary(ctx context.Context, db *gorm.DB, logger *slog.Logger, userID string) (*DashboardSummary, error) {
	linkIDs, err := links.IDsByUser(db, userID)
	if err != nil {
		return nil, err
	}

	if len(linkIDs) == 0 {
		return &DashboardSummary{Summary: emptySummary(), TopLinks: []LinkCount{}}, nil
	}

	tasks := sharedTasks(db, linkIDs)
	tasks = append(tasks, async.Task{
		Name: "topLinks",
		Execute: func() (interface{}, error) {
			return GetTopLinks(db, userID)
		},
	})

	results := async.NewPool(queryWorkers).Execute(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := async.FirstError(results); err != nil {
		logger.Error("Dashboard aggregation failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, err
	}

	summary := assembleSummary(results)
	return &DashboardSummary{
		Summary:  summary,
		TopLinks: results["topLinks"].Data.([]LinkCount),
	}, nil
}

// FetchLinkSummary aggregates analytics for a single link. Ownership must be
// verified by the caller before the scope reaches this point.
func FetchLinkSummary(ctx context.Context, db *gorm.DB, logger *slog.Logger, linkID string) (*LinkSummary, error) {
	linkIDs := []string{linkID}

	tasks := sharedTasks(db, linkIDs)
	tasks = append(tasks, async.Task{
		Name: "browsers",
		Execute: func() (interface{}, error) {
			return GetBrowserBreakdown(db, linkIDs)
		},
	})

	results := async.NewPool(queryWorkers).Execute(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := async.FirstError(results); err != nil {
		logger.Error("Link aggregation failed",
			slog.String("link_id", linkID),
			slog.Any("error", err))
		return nil, err
	}

	summary := assembleSummary(results)
	return &LinkSummary{
		Summary:  summary,
		Browsers: results["browsers"].Data.([]BrowserCount),
	}, nil
}

// sharedTasks builds the sub-queries common to both views.
func sharedTasks(db *gorm.DB, linkIDs []string) []async.Task {
	return []async.Task{
		{
			Name: "totalClicks",
			Execute: func() (interface{}, error) {
				return GetTotalClicks(db, linkIDs)
			},
		},
		{
			Name: "uniqueVisitors",
			Execute: func() (interface{}, error) {
				return GetUniqueVisitors(db, linkIDs)
			},
		},
		{
			Name: "todayClicks",
			Execute: func() (interface{}, error) {
				return GetTodayClicks(db, linkIDs)
			},
		},
		{
			Name: "last7Days",
			Execute: func() (interface{}, error) {
				return GetLast7Days(db, linkIDs)
			},
		},
		{
			Name: "devices",
			Execute: func() (interface{}, error) {
				return GetDeviceBreakdown(db, linkIDs)
			},
		},
		{
			Name: "topCountries",
			Execute: func() (interface{}, error) {
				return GetTopCountries(db, linkIDs)
			},
		},
		{
			Name: "referrers",
			Execute: func() (interface{}, error) {
				return GetTopReferrers(db, linkIDs)
			},
		},
	}
}

func assembleSummary(results map[string]async.Result) Summary {
	return Summary{
		TotalClicks:    results["totalClicks"].Data.(int64),
		UniqueVisitors: results["uniqueVisitors"].Data.(int64),
		TodayClicks:    results["todayClicks"].Data.(int64),
		Last7Days:      results["last7Days"].Data.([]DayCount),
		Devices:        results["devices"].Data.([]DeviceCount),
		TopCountries:   results["topCountries"].Data.([]CountryCount),
		Referrers:      results["referrers"].Data.([]ReferrerCount),
	}
}
