package models

import "gorm.io/datatypes"

const QuestionTypeLikert = "likert"

type OptionChoice struct {
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`
}

type Question struct {
	ID       uint                               `gorm:"primaryKey" json:"id"`
	TestID   uint                               `gorm:"not null;index" json:"testId"`
	Text     string                             `gorm:"type:text;not null" json:"text"`
	Type     string                             `gorm:"size:20;not null" json:"type"`
	Options  datatypes.JSONType[[]OptionChoice] `json:"options"`
	Position int                                `gorm:"not null" json:"order"`
}
