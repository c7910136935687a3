package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nuuxixv/MindConnect/internal/database"
	"github.com/nuuxixv/MindConnect/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

const minPasswordLength = 6

type AuthService struct {
	db        *gorm.DB
	sessions  *SessionStore
	jwtSecret []byte
	localTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, sessions *SessionStore, jwtSecret string, localTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		localTTL:  localTTL,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session is a freshly started login: the stored state and the bearer token
// that points at it.
type Session struct {
	State     SessionState
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	verr := &ValidationError{}
	if email == "" || !strings.Contains(email, "@") {
		verr.Add("email", "must be a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", "must be at least %d characters", minPasswordLength)
	}
	if err := verr.Err(); err != nil {
		return nil, nil, err
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("id = ? OR email = ?", email, email).First(&existing).Error
	if err == nil {
		return nil, nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		ID:           email,
		Email:        email,
		FirstName:    optional(in.FirstName),
		LastName:     optional(in.LastName),
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, nil, fmt.Errorf("email already registered: %w", ErrConflict)
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.startLocalSession(ctx, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, sess, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.startLocalSession(ctx, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, sess, nil
}

// startLocalSession issues a session without a refresh credential, so it ends
// for good once the local TTL passes.
func (s *AuthService) startLocalSession(ctx context.Context, user *models.User) (*Session, error) {
	expires := s.now().Add(s.localTTL).UTC()
	claims := models.SessionClaims{
		Subject:   user.ID,
		Email:     user.Email,
		FirstName: deref(user.FirstName),
		LastName:  deref(user.LastName),
		ExpiresAt: expires.Unix(),
	}
	return s.StartSession(ctx, user.ID, &TokenSet{Claims: &claims, Expiry: expires})
}

// UpsertUser writes the identity claims onto the user row keyed by subject.
func (s *AuthService) UpsertUser(ctx context.Context, claims models.SessionClaims) (*models.User, error) {
	if claims.Subject == "" {
		return nil, errors.New("claims missing subject")
	}
	user := models.User{
		ID:              claims.Subject,
		Email:           claims.Email,
		FirstName:       optional(claims.FirstName),
		LastName:        optional(claims.LastName),
		ProfileImageURL: optional(claims.ProfileImageURL),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return s.GetUser(ctx, claims.Subject)
}

// StartSession stores a session for userID built from tokens.
func (s *AuthService) StartSession(ctx context.Context, userID string, tokens *TokenSet) (*Session, error) {
	state := SessionState{UserID: userID}
	if tokens.Claims != nil {
		state.Claims = *tokens.Claims
	}
	state = state.withTokens(tokens)

	stored, expires, err := s.sessions.Create(ctx, state)
	if err != nil {
		return nil, err
	}
	token, err := s.GenerateToken(stored.ID, expires)
	if err != nil {
		return nil, err
	}
	return &Session{State: stored, Token: token, ExpiresAt: expires}, nil
}

func (s *AuthService) GenerateToken(sessionID string, expires time.Time) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": expires.Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken returns the session id carried by a signed session token.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrUnauthorized
	}
	return sid, nil
}

// Authenticate resolves a session token to its stored state.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (SessionState, error) {
	sid, err := s.ValidateToken(tokenString)
	if err != nil {
		return SessionState{}, err
	}
	return s.sessions.Load(ctx, sid)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
