package models

import "time"

type Profile struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:255;not null;index" json:"userId"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Name      string     `gorm:"type:text;not null" json:"name"`
	Relation  string     `gorm:"size:20;not null" json:"relation"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    *string    `gorm:"size:20" json:"gender"`
	CreatedAt time.Time  `json:"createdAt"`
}

const (
	RelationSelf   = "self"
	RelationSpouse = "spouse"
	RelationChild  = "child"
)
