package models

// Test is a questionnaire definition. Rows are written by the seeder only.
type Test struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"type:text;not null" json:"title"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	Category      string     `gorm:"size:50;not null;index" json:"category"`
	QuestionCount int        `gorm:"not null" json:"questionCount"`
	EstimatedTime int        `gorm:"not null" json:"estimatedTime"`
	CoverImage    *string    `gorm:"type:text" json:"coverImage"`
	IsPublic      bool       `gorm:"not null;default:true" json:"isPublic"`
	Questions     []Question `gorm:"foreignKey:TestID" json:"-"`
}
