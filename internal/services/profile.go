package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nuuxixv/MindConnect/internal/database"
	"github.com/nuuxixv/MindConnect/internal/models"

	"gorm.io/gorm"
)

var relations = map[string]bool{
	models.RelationSelf:   true,
	models.RelationSpouse: true,
	models.RelationChild:  true,
}

type ProfileInput struct {
	Name      string
	Relation  string
	BirthDate *time.Time
	Gender    *string
}

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) List(ctx context.Context, userID string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func (s *ProfileService) Create(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	verr := &ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "is required")
	}
	if !relations[in.Relation] {
		verr.Add("relation", "must be one of self, spouse, child")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	profile := models.Profile{
		UserID:    userID,
		Name:      name,
		Relation:  in.Relation,
		BirthDate: in.BirthDate,
		Gender:    optional(deref(in.Gender)),
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &profile, nil
}

// Delete removes one of the caller's profiles. Profiles that results still
// point at are kept and reported as a conflict.
func (s *ProfileService) Delete(ctx context.Context, userID string, id uint) error {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("profile")
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&profile).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("profile %d has results: %w", id, ErrConflict)
		}
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
