package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionClaims mirrors the identity claims kept with a session.
type SessionClaims struct {
	Subject         string `json:"sub"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	ExpiresAt       int64  `json:"exp,omitempty"`
}

// AuthSession is the server-side record behind a session cookie.
type AuthSession struct {
	ID             string                            `gorm:"primaryKey;size:36" json:"id"`
	UserID         string                            `gorm:"size:255;not null;index" json:"userId"`
	User           *User                             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Claims         datatypes.JSONType[SessionClaims] `json:"-"`
	AccessToken    string                            `gorm:"type:text" json:"-"`
	RefreshToken   string                            `gorm:"type:text" json:"-"`
	TokenExpiresAt *time.Time                        `json:"tokenExpiresAt,omitempty"`
	ExpiresAt      time.Time                         `gorm:"not null;index" json:"expiresAt"`
	CreatedAt      time.Time                         `json:"createdAt"`
	UpdatedAt      time.Time                         `json:"updatedAt"`
}

func (AuthSession) TableName() string { return "auth_sessions" }
