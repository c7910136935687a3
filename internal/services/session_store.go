package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nuuxixv/MindConnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionStore keeps session records in the auth_sessions table.
type SessionStore struct {
	db    *gorm.DB
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{
		db:    db,
		ttl:   ttl,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create persists state under a fresh id and returns the stored state along
// with the record expiry.
func (s *SessionStore) Create(ctx context.Context, state SessionState) (SessionState, time.Time, error) {
	state.ID = s.newID()
	expires := s.now().Add(s.ttl).UTC()
	record := models.AuthSession{
		ID:             state.ID,
		UserID:         state.UserID,
		Claims:         datatypes.NewJSONType(state.Claims),
		AccessToken:    state.AccessToken,
		RefreshToken:   state.RefreshToken,
		TokenExpiresAt: state.ExpiresAt,
		ExpiresAt:      expires,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return SessionState{}, time.Time{}, fmt.Errorf("create session: %w", err)
	}
	return state, expires, nil
}

// Load returns the session with the given id. Missing and TTL-expired
// records are both unauthorized; expired ones are removed on the way.
func (s *SessionStore) Load(ctx context.Context, id string) (SessionState, error) {
	var record models.AuthSession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SessionState{}, ErrUnauthorized
	}
	if err != nil {
		return SessionState{}, fmt.Errorf("load session: %w", err)
	}
	if !s.now().Before(record.ExpiresAt) {
		_ = s.Delete(ctx, id)
		return SessionState{}, ErrUnauthorized
	}
	return SessionState{
		ID:           record.ID,
		UserID:       record.UserID,
		Claims:       record.Claims.Data(),
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		ExpiresAt:    record.TokenExpiresAt,
	}, nil
}

// Save overwrites the token material of an existing session.
func (s *SessionStore) Save(ctx context.Context, state SessionState) error {
	res := s.db.WithContext(ctx).Model(&models.AuthSession{}).
		Where("id = ?", state.ID).
		Updates(map[string]any{
			"claims":           datatypes.NewJSONType(state.Claims),
			"access_token":     state.AccessToken,
			"refresh_token":    state.RefreshToken,
			"token_expires_at": state.ExpiresAt,
			"updated_at":       s.now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("save session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUnauthorized
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AuthSession{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Sweep removes records whose TTL has passed and reports how many went.
func (s *SessionStore) Sweep(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&models.AuthSession{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
