package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

// Score is the computed aggregate stored with every result.
type Score struct {
	Total float64 `json:"total"`
}

// Finite reports whether the score can be encoded as JSON.
func (s Score) Finite() bool {
	return !math.IsInf(s.Total, 0) && !math.IsNaN(s.Total)
}

// TestResult is written once per submission and never updated.
type TestResult struct {
	ID          uint                                   `gorm:"primaryKey" json:"id"`
	UserID      string                                 `gorm:"size:255;not null;index" json:"userId"`
	User        *User                                  `gorm:"foreignKey:UserID" json:"-"`
	ProfileID   uint                                   `gorm:"not null;index" json:"profileId"`
	Profile     *Profile                               `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	TestID      uint                                   `gorm:"not null;index" json:"testId"`
	Test        *Test                                  `gorm:"foreignKey:TestID" json:"test,omitempty"`
	Answers     datatypes.JSONType[map[string]float64] `gorm:"not null" json:"answers"`
	Score       datatypes.JSONType[Score]              `json:"score"`
	Summary     *string                                `gorm:"type:text" json:"summary"`
	ConductedAt time.Time                              `gorm:"index" json:"conductedAt"`
}
