package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nuuxixv/MindConnect/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Tests []CatalogTest `yaml:"tests"`
}

type CatalogTest struct {
	Title         string            `yaml:"title"`
	Description   string            `yaml:"description"`
	Category      string            `yaml:"category"`
	EstimatedTime int               `yaml:"estimatedTime"`
	CoverImage    string            `yaml:"coverImage"`
	Questions     []CatalogQuestion `yaml:"questions"`
}

type CatalogQuestion struct {
	Text    string                `yaml:"text"`
	Type    string                `yaml:"type"`
	Options []models.OptionChoice `yaml:"options"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, t := range cat.Tests {
		if t.Title == "" || t.Category == "" {
			return nil, fmt.Errorf("catalog test %d: title and category are required", i)
		}
		if len(t.Questions) == 0 {
			return nil, fmt.Errorf("catalog test %q has no questions", t.Title)
		}
	}
	return &cat, nil
}

func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// Seed inserts the catalog when no tests exist yet. It reports whether
// anything was written.
func Seed(ctx context.Context, db *gorm.DB, cat *Catalog) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Test{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count tests: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ct := range cat.Tests {
			test := models.Test{
				Title:         ct.Title,
				Description:   ct.Description,
				Category:      ct.Category,
				QuestionCount: len(ct.Questions),
				EstimatedTime: ct.EstimatedTime,
				IsPublic:      true,
			}
			if ct.CoverImage != "" {
				cover := ct.CoverImage
				test.CoverImage = &cover
			}
			if err := tx.Create(&test).Error; err != nil {
				return fmt.Errorf("create test %q: %w", ct.Title, err)
			}

			questions := make([]models.Question, 0, len(ct.Questions))
			for i, cq := range ct.Questions {
				qType := cq.Type
				if qType == "" {
					qType = models.QuestionTypeLikert
				}
				options := cq.Options
				if options == nil {
					options = []models.OptionChoice{}
				}
				questions = append(questions, models.Question{
					TestID:   test.ID,
					Text:     cq.Text,
					Type:     qType,
					Options:  datatypes.NewJSONType(options),
					Position: i + 1,
				})
			}
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("create questions for %q: %w", ct.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
