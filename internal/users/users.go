// Package users manages account records and credential checks.
package users

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost mirrors the hashing cost the service has always used; changing
// it only affects newly hashed passwords.
const bcryptCost = 12

// ErrUserExists is returned when the email or username is already taken.
var ErrUserExists = errors.New("email or username already taken")

// ErrInvalidCredentials is returned on a failed login. It deliberately does
// not distinguish a missing account from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = gorm.ErrRecordNotFound

// User represents an account. A user owns one or more profiles.
type User struct {
	ID                string `gorm:"primaryKey;size:36" json:"id"`
	Name              string `gorm:"not null" json:"name"`
	Email             string `gorm:"uniqueIndex;not null" json:"email"`
	Username          string `gorm:"uniqueIndex;not null" json:"username"`
	EncryptedPassword string `gorm:"not null" json:"-"`
	ProfileImage      string `json:"profile_image"`
	ThemeID           int    `gorm:"default:1" json:"theme_id"`
	IsPro             bool   `gorm:"default:false" json:"is_pro"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RegisterInput holds the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

// Register creates a new user with a hashed password. Returns ErrUserExists
// when the email or username is already in use.
func Register(db *gorm.DB, input RegisterInput) (*User, error) {
	if input.Name == "" || input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, errors.New("all fields are required")
	}

	var count int64
	if err := db.Model(&User{}).
		Where("email = ? OR username = ?", input.Email, input.Username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:              input.Name,
		Email:             input.Email,
		Username:          input.Username,
		EncryptedPassword: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an email/password pair and returns the matching user.
func Authenticate(db *gorm.DB, email, password string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID retrieves a user by ID.
func FindByID(db *gorm.DB, id string) (*User, error) {
	var user User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateInput holds partial account updates; nil fields are left unchanged.
type UpdateInput struct {
	Name         *string
	Email        *string
	Username     *string
	ProfileImage *string
}

// UpdateAccount applies a partial update after checking that the new email or
// username is not taken by another account.
func UpdateAccount(db *gorm.DB, userID string, input UpdateInput) (*User, error) {
	if input.Email != nil || input.Username != nil {
		email := ""
		username := ""
		if input.Email != nil {
			email = *input.Email
		}
		if input.Username != nil {
			username = *input.Username
		}

		var count int64
		if err := db.Model(&User{}).
			Where("(email = ? OR username = ?) AND id != ?", email, username, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUserExists
		}
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Username != nil {
		updates["username"] = *input.Username
	}
	if input.ProfileImage != nil {
		updates["profile_image"] = *input.ProfileImage
	}

	if len(updates) > 0 {
		if err := db.Model(&User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return FindByID(db, userID)
}
