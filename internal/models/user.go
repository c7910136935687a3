package models

import "time"

// User is keyed by the identity subject; local accounts use their email.
type User struct {
	ID              string    `gorm:"primaryKey;size:255" json:"id"`
	Email           string    `gorm:"size:255;index" json:"email,omitempty"`
	FirstName       *string   `gorm:"size:100" json:"firstName"`
	LastName        *string   `gorm:"size:100" json:"lastName,omitempty"`
	ProfileImageURL *string   `gorm:"size:500" json:"profileImageUrl,omitempty"`
	PasswordHash    string    `gorm:"size:255" json:"-"`
	CreatedAt       time.Time `json:"createdAt,omitzero"`
	UpdatedAt       time.Time `json:"updatedAt,omitzero"`
}
