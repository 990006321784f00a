package jobs

import (
	"log/slog"

	"linkhub/internal/database"
)

// ReconcileJob repairs drift between links.click_count and the click-event
// log. The event table is ground truth; the counter is only a display cache,
// so any divergence (manual edits, restored backups) is resolved in the
// event table's favor.
type ReconcileJob struct {
	dbManager *database.DBManager
	logger    *slog.Logger
}

func NewReconcileJob(dbManager *database.DBManager, logger *slog.Logger) *ReconcileJob {
	return &ReconcileJob{
		dbManager: dbManager,
		logger:    logger,
	}
}

// Run rewrites every diverged counter from the event table.
func (j *ReconcileJob) Run() error {
	db := j.dbManager.GetConnection()

	result := db.Exec(`
        UPDATE links
        SET click_count = (
            SELECT COUNT(*) FROM click_events c WHERE c.link_id = links.id
        )
        WHERE click_count <> (
            SELECT COUNT(*) FROM click_events c WHERE c.link_id = links.id
        )`)
	if result.Error != nil {
		j.logger.Error("Failed to reconcile click counters", slog.Any("error", result.Error))
		return result.Error
	}

	if result.RowsAffected > 0 {
		j.logger.Warn("Repaired diverged click counters",
			slog.Int64("repaired_links", result.RowsAffected))
	} else {
		j.logger.Debug("Click counters consistent with event log")
	}

	return nil
}
