// Package profiles manages public link-in-bio pages: creation, appearance,
// and the public view rendered at /u/{slug}.
package profiles

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkhub/internal/links"
)

// ErrSlugTaken is returned when the requested public URL is already in use.
var ErrSlugTaken = errors.New("this URL is already taken")

// ErrProfileNotFound is returned when a profile lookup fails or the caller
// does not own the profile.
var ErrProfileNotFound = errors.New("profile not found")

// Profile represents a public-facing page owned by a user.
type Profile struct {
	ID           string             `gorm:"primaryKey;size:36" json:"id"`
	UserID       string             `gorm:"index;size:36;not null" json:"user_id"`
	Slug         string             `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	Title        string             `json:"title"`
	Bio          string             `json:"bio"`
	ProfileImage string             `json:"profile_image"`
	Appearance   AppearanceSettings `gorm:"type:text" json:"appearance_settings"`
	IsPrimary    bool               `gorm:"default:false" json:"is_primary"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	Links []links.Link `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Create adds a profile for userID under the given slug, seeded with the
// default appearance palette.
func Create(db *gorm.DB, userID, slug string) (*Profile, error) {
	if slug == "" {
		return nil, errors.New("slug is required")
	}

	var count int64
	if err := db.Model(&Profile{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	profile := Profile{
		UserID:     userID,
		Slug:       slug,
		Appearance: DefaultAppearance(),
	}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByUser returns all of a user's profiles, newest first.
func ListByUser(db *gorm.DB, userID string) ([]Profile, error) {
	var result []Profile
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindOwned retrieves a profile only if it belongs to userID.
func FindOwned(db *gorm.DB, profileID, userID string) (*Profile, error) {
	var profile Profile
	err := db.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateInput holds partial profile updates; nil fields are left unchanged.
type UpdateInput struct {
	Appearance   *AppearanceSettings
	ProfileImage *string
	Bio          *string
}

// Update applies a partial update to a profile owned by userID.
func Update(db *gorm.DB, profileID, userID string, input UpdateInput) (*Profile, error) {
	profile, err := FindOwned(db, profileID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Appearance != nil {
		updates["appearance"] = *input.Appearance
	}
	if input.ProfileImage != nil {
		updates["profile_image"] = *input.ProfileImage
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}

	if len(updates) > 0 {
		if err := db.Model(profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return FindOwned(db, profileID, userID)
}

// Delete removes a profile owned by userID. Its links and their click events
// cascade away with it.
func Delete(db *gorm.DB, profileID, userID string) error {
	result := db.Where("id = ? AND user_id = ?", profileID, userID).Delete(&Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// PublicLink is the subset of a link rendered on the public page.
type PublicLink struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
	Platform string `json:"platform"`
}

// PublicProfile is the payload served for /u/{slug}.
type PublicProfile struct {
	Username     string             `json:"username"`
	Name         string             `json:"name"`
	Bio          string             `json:"bio"`
	ProfileImage string             `json:"profile_image"`
	Appearance   AppearanceSettings `json:"appearance"`
	Links        []PublicLink       `json:"links"`
	IsPro        bool               `json:"is_pro"`
}

// GetPublicProfile resolves a slug to its public page. Only active links are
// listed; drafts with an empty URL remain listed as long as they are active,
// matching how pages have always rendered.
func GetPublicProfile(db *gorm.DB, slug string) (*PublicProfile, error) {
	var row struct {
		Profile
		OwnerName string
		OwnerPro  bool
	}

	err := db.Table("profiles").
		Select("profiles.*, users.name AS owner_name, users.is_pro AS owner_pro").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.slug = ?", slug).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var activeLinks []links.Link
	if err := db.Where("profile_id = ? AND is_active = ?", row.ID, true).
		Order("position ASC").
		Find(&activeLinks).Error; err != nil {
		return nil, err
	}

	publicLinks := make([]PublicLink, len(activeLinks))
	for i, l := range activeLinks {
		publicLinks[i] = PublicLink{
			ID:       l.ID,
			Title:    l.Title,
			URL:      l.URL,
			Position: l.Position,
			Platform: l.Platform,
		}
	}

	return &PublicProfile{
		Username:     row.Slug,
		Name:         row.OwnerName,
		Bio:          row.Bio,
		ProfileImage: row.ProfileImage,
		Appearance:   row.Appearance,
		Links:        publicLinks,
		IsPro:        row.OwnerPro,
	}, nil
}
