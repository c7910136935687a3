package services

import (
	"context"
	"testing"
	"time"

	"github.com/nuuxixv/MindConnect/internal/database/dbtest"
	"github.com/nuuxixv/MindConnect/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuth(t *testing.T) (*AuthService, *SessionStore, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	store := NewSessionStore(db, 7*24*time.Hour)
	return NewAuthService(db, store, "test-secret", 24*time.Hour), store, db
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	user, sess, err := auth.Register(ctx, RegisterInput{Email: " Mom@Example.com ", Password: "secret1", FirstName: "Mina"})
	require.NoError(t, err)
	require.Equal(t, "mom@example.com", user.ID)
	require.Equal(t, "Mina", *user.FirstName)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEmpty(t, sess.Token)
	require.Empty(t, sess.State.RefreshToken)
	require.NotNil(t, sess.State.ExpiresAt)

	state, err := auth.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, state.UserID)
	require.Equal(t, "mom@example.com", state.Claims.Email)

	_, _, err = auth.Register(ctx, RegisterInput{Email: "mom@example.com", Password: "another"})
	require.ErrorIs(t, err, ErrConflict)

	_, _, err = auth.Login(ctx, "mom@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = auth.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, sess2, err := auth.Login(ctx, "MOM@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEqual(t, sess.State.ID, sess2.State.ID)
}

func TestRegisterValidation(t *testing.T) {
	auth, _, _ := newAuth(t)
	_, _, err := auth.Register(context.Background(), RegisterInput{Email: "nope", Password: "123"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	require.Equal(t, "email", verr.Fields[0].Field)
	require.Equal(t, "password", verr.Fields[1].Field)
}

func TestLocalSessionExpiresAfterTTL(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	_, sess, err := auth.Register(ctx, RegisterInput{Email: "dad@example.com", Password: "secret1"})
	require.NoError(t, err)

	guard := NewSessionGuard(nil, nil, time.Second, nil, nil)
	guard.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, _, err = guard.Admit(ctx, &sess.State)
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	auth, _, _ := newAuth(t)
	other := NewAuthService(nil, nil, "other-secret", time.Hour)

	token, err := other.GenerateToken("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = auth.ValidateToken(token)
	require.ErrorIs(t, err, ErrUnauthorized)

	expired, err := auth.GenerateToken("sid-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = auth.ValidateToken(expired)
	require.ErrorIs(t, err, ErrUnauthorized)

	good, err := auth.GenerateToken("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	sid, err := auth.ValidateToken(good)
	require.NoError(t, err)
	require.Equal(t, "sid-1", sid)
}

func TestUpsertUserUpdatesClaims(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	user, err := auth.UpsertUser(ctx, models.SessionClaims{Subject: "oidc|42", Email: "a@example.com", FirstName: "Ara"})
	require.NoError(t, err)
	require.Equal(t, "Ara", *user.FirstName)

	user, err = auth.UpsertUser(ctx, models.SessionClaims{Subject: "oidc|42", Email: "b@example.com", FirstName: "Bora"})
	require.NoError(t, err)
	require.Equal(t, "b@example.com", user.Email)
	require.Equal(t, "Bora", *user.FirstName)

	_, err = auth.UpsertUser(ctx, models.SessionClaims{})
	require.Error(t, err)
}

func TestLogoutDeletesSession(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	_, sess, err := auth.Register(ctx, RegisterInput{Email: "kid@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, sess.State.ID))
	_, err = auth.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NoError(t, auth.Logout(ctx, ""))
}

func TestGetUserMissing(t *testing.T) {
	auth, _, _ := newAuth(t)
	_, err := auth.GetUser(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStoreLifecycle(t *testing.T) {
	_, store, db := newAuth(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com"}).Error)

	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	state, expires, err := store.Create(ctx, SessionState{
		UserID:       "u1",
		Claims:       models.SessionClaims{Subject: "u1"},
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresAt:    &exp,
	})
	require.NoError(t, err)
	require.Len(t, state.ID, 36)
	require.True(t, expires.After(time.Now().Add(6*24*time.Hour)))

	loaded, err := store.Load(ctx, state.ID)
	require.NoError(t, err)
	require.Equal(t, "rt", loaded.RefreshToken)
	require.True(t, loaded.ExpiresAt.Equal(exp))

	newExp := exp.Add(time.Hour)
	loaded.AccessToken = "at2"
	loaded.ExpiresAt = &newExp
	require.NoError(t, store.Save(ctx, loaded))
	reloaded, err := store.Load(ctx, state.ID)
	require.NoError(t, err)
	require.Equal(t, "at2", reloaded.AccessToken)
	require.True(t, reloaded.ExpiresAt.Equal(newExp))

	require.ErrorIs(t, store.Save(ctx, SessionState{ID: "missing"}), ErrUnauthorized)

	_, err = store.Load(ctx, "missing")
	require.ErrorIs(t, err, ErrUnauthorized)

	store.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = store.Load(ctx, state.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
	var count int64
	require.NoError(t, db.Model(&models.AuthSession{}).Count(&count).Error)
	require.Zero(t, count, "expired record is removed on load")
}

func TestSessionStoreSweep(t *testing.T) {
	_, store, db := newAuth(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.User{ID: "u1"}).Error)

	for i := 0; i < 3; i++ {
		_, _, err := store.Create(ctx, SessionState{UserID: "u1"})
		require.NoError(t, err)
	}
	n, err := store.Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	store.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	n, err = store.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}
