package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nuuxixv/MindConnect/internal/database/dbtest"
	"github.com/nuuxixv/MindConnect/internal/logging"
	"github.com/nuuxixv/MindConnect/internal/models"
	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type refresherFunc func(ctx context.Context, rt string) (*services.TokenSet, error)

func (f refresherFunc) Refresh(ctx context.Context, rt string) (*services.TokenSet, error) {
	return f(ctx, rt)
}

type authFixture struct {
	auth   *services.AuthService
	store  *services.SessionStore
	router *gin.Engine
}

func newAuthFixture(t *testing.T, refresher services.TokenRefresher) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com"}).Error)

	store := services.NewSessionStore(db, 7*24*time.Hour)
	auth := services.NewAuthService(db, store, "secret", 24*time.Hour)
	guard := services.NewSessionGuard(refresher, store, time.Second, nil, logging.Discard())

	r := gin.New()
	r.GET("/me", SessionAuth(auth, guard, logging.Discard()), func(c *gin.Context) {
		state, ok := services.SessionFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUserID), "access": state.AccessToken})
	})
	return &authFixture{auth: auth, store: store, router: r}
}

func (f *authFixture) session(t *testing.T, tokens *services.TokenSet) string {
	t.Helper()
	sess, err := f.auth.StartSession(context.Background(), "u1", tokens)
	require.NoError(t, err)
	return sess.Token
}

func (f *authFixture) get(token string, viaCookie bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		if viaCookie {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSessionAuthRejectsMissingOrBadToken(t *testing.T) {
	f := newAuthFixture(t, nil)

	w := f.get("", false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())

	w = f.get("not-a-jwt", false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
}

func TestSessionAuthAdmitsValidSession(t *testing.T) {
	f := newAuthFixture(t, nil)
	token := f.session(t, &services.TokenSet{AccessToken: "at", Expiry: time.Now().Add(time.Hour)})

	for _, viaCookie := range []bool{true, false} {
		w := f.get(token, viaCookie)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"user":"u1","access":"at"}`, w.Body.String())
	}
}

func TestSessionAuthExpiredWithoutRefresh(t *testing.T) {
	f := newAuthFixture(t, nil)
	token := f.session(t, &services.TokenSet{AccessToken: "at", Expiry: time.Now().Add(-time.Minute)})

	w := f.get(token, true)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Session expired"}`, w.Body.String())
}

func TestSessionAuthRefreshesOnce(t *testing.T) {
	calls := 0
	f := newAuthFixture(t, refresherFunc(func(_ context.Context, rt string) (*services.TokenSet, error) {
		calls++
		require.Equal(t, "rt", rt)
		return &services.TokenSet{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)}, nil
	}))
	token := f.session(t, &services.TokenSet{AccessToken: "stale", RefreshToken: "rt", Expiry: time.Now().Add(-time.Minute)})

	w := f.get(token, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user":"u1","access":"fresh"}`, w.Body.String())

	// The refreshed tokens were persisted, so the next request needs no refresh.
	w = f.get(token, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, calls)
}

func TestSessionAuthRefreshFailure(t *testing.T) {
	f := newAuthFixture(t, refresherFunc(func(context.Context, string) (*services.TokenSet, error) {
		return nil, errors.New("invalid_grant")
	}))
	token := f.session(t, &services.TokenSet{AccessToken: "stale", RefreshToken: "rt", Expiry: time.Now().Add(-time.Minute)})

	w := f.get(token, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Session expired"}`, w.Body.String())
}
