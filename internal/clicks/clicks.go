// Package clicks records redirect visits: one immutable click event per hit
// plus the denormalized counter on the link row.
package clicks

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"linkhub/internal/pkg/visitor"
)

// ClickEvent is one immutable record of a redirect visit. Rows are only ever
// inserted, and only removed by cascade when their link is deleted. This
// table is the source of truth for all analytics; links.click_count is just
// a display cache over it.
type ClickEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	LinkID    string    `gorm:"index;size:36;not null"`
	IPAddress string    `gorm:"not null"`
	Country   string    `gorm:"index"`
	City      string
	Device    string    `gorm:"index"`
	Browser   string
	Referer   string
	ClickedAt time.Time `gorm:"index;not null"`
}

// Record persists one visit against linkID: it increments the link's
// click_count and appends a click event, in a single transaction so the
// counter cannot drift from the event table under partial failure. The
// increment runs as an in-store expression, never read-modify-write, so
// concurrent redirects of the same link do not lose updates.
func Record(db *gorm.DB, logger *slog.Logger, linkID string, v visitor.Visit) error {
	event := ClickEvent{
		LinkID:    linkID,
		IPAddress: v.IPAddress,
		Country:   v.Country,
		City:      v.City,
		Device:    v.Device,
		Browser:   v.Browser,
		Referer:   v.Referer,
		ClickedAt: time.Now().UTC(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Table("links").
			Where("id = ?", linkID).
			Update("click_count", gorm.Expr("click_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("link %s vanished before recording", linkID)
		}

		return tx.Create(&event).Error
	})
	if err != nil {
		logger.Error("Failed to record click",
			slog.String("link_id", linkID),
			slog.Any("error", err))
		return fmt.Errorf("failed to record click: %w", err)
	}

	return nil
}

// CountByLink returns the number of click events referencing linkID.
func CountByLink(db *gorm.DB, linkID string) (int64, error) {
	var count int64
	err := db.Model(&ClickEvent{}).Where("link_id = ?", linkID).Count(&count).Error
	return count, err
}
