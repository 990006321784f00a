// Package links manages the trackable outbound links attached to a profile.
package links

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkhub/internal/clicks"
)

// DefaultPlatform is the platform tag assigned when none is given.
const DefaultPlatform = "website"

// ErrLinkNotFound is returned when a link lookup fails or the caller does
// not own the link.
var ErrLinkNotFound = errors.New("link not found")

// Link represents a single trackable outbound URL on a profile. ClickCount
// is a denormalized display cache; the click_events table is authoritative.
type Link struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"index;size:36;not null" json:"user_id"`
	ProfileID  string    `gorm:"index;size:36;not null" json:"profile_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Platform   string    `gorm:"default:'website'" json:"platform"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	ClickCount int64     `gorm:"not null;default:0" json:"click_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	ClickEvents []clicks.ClickEvent `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key.
func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Add creates a link at the end of the profile's display order. Title and
// URL may be empty - newly added links start as drafts the owner fills in.
func Add(db *gorm.DB, userID, profileID, title, url, platform string) (*Link, error) {
	if profileID == "" {
		return nil, errors.New("profile ID is required")
	}
	if platform == "" {
		platform = DefaultPlatform
	}

	var nextPosition int
	err := db.Model(&Link{}).
		Where("profile_id = ?", profileID).
		Select("COALESCE(MAX(position), 0) + 1").
		Scan(&nextPosition).Error
	if err != nil {
		return nil, err
	}

	link := Link{
		UserID:    userID,
		ProfileID: profileID,
		Title:     strings.TrimSpace(title),
		URL:       strings.TrimSpace(url),
		Position:  nextPosition,
		Platform:  platform,
		IsActive:  true,
	}
	if err := db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListByProfile returns the caller's links on a profile in display order.
func ListByProfile(db *gorm.DB, userID, profileID string) ([]Link, error) {
	var result []Link
	err := db.Where("user_id = ? AND profile_id = ?", userID, profileID).
		Order("position ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindOwned retrieves a link only if it belongs to userID.
func FindOwned(db *gorm.DB, linkID, userID string) (*Link, error) {
	var link Link
	err := db.Where("id = ? AND user_id = ?", linkID, userID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindActive retrieves a link by id if its active flag is set. Used by the
// public redirect path, so there is no ownership scoping.
func FindActive(db *gorm.DB, linkID string) (*Link, error) {
	var link Link
	err := db.Where("id = ? AND is_active = ?", linkID, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

// UpdateInput holds partial link updates; nil fields are left unchanged.
type UpdateInput struct {
	Title    *string
	URL      *string
	IsActive *bool
	Platform *string
}

// Update applies a partial update to a link owned by userID.
func Update(db *gorm.DB, linkID, userID string, input UpdateInput) (*Link, error) {
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.URL != nil {
		updates["url"] = *input.URL
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Platform != nil {
		updates["platform"] = *input.Platform
	}

	if len(updates) > 0 {
		result := db.Model(&Link{}).
			Where("id = ? AND user_id = ?", linkID, userID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrLinkNotFound
		}
	}

	return FindOwned(db, linkID, userID)
}

// Delete removes a link owned by userID; its click events cascade away.
func Delete(db *gorm.DB, linkID, userID string) error {
	result := db.Where("id = ? AND user_id = ?", linkID, userID).Delete(&Link{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Reorder assigns position = index for each id in orderedIDs, scoped to
// links owned by userID. Ids the caller does not own are skipped rather than
// failing the batch. The updates are applied per link, not atomically across
// the batch - position is a display hint, so partial application under
// failure is acceptable.
func Reorder(db *gorm.DB, orderedIDs []string, userID string) error {
	for index, linkID := range orderedIDs {
		err := db.Model(&Link{}).
			Where("id = ? AND user_id = ?", linkID, userID).
			Update("position", index).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// IDsByUser returns the ids of every link the user owns, across all of
// their profiles. Used to scope dashboard analytics.
func IDsByUser(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&Link{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
