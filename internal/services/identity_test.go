package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nuuxixv/MindConnect/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeIssuer is a minimal OpenID provider: discovery, token endpoint and an
// end-session endpoint.
type fakeIssuer struct {
	*httptest.Server
	discoveries  atomic.Int32
	mu           sync.Mutex
	grants       []url.Values
	idTokenExp   time.Time
	refreshToken string
	failRefresh  bool
}

func newFakeIssuer(t *testing.T) *fakeIssuer {
	t.Helper()
	f := &fakeIssuer{idTokenExp: time.Now().Add(time.Hour).Truncate(time.Second), refreshToken: "rt-new"}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		f.discoveries.Add(1)
		_ = json.NewEncoder(w).Encode(Discovery{
			Issuer:                f.URL,
			AuthorizationEndpoint: f.URL + "/auth",
			TokenEndpoint:         f.URL + "/token",
			EndSessionEndpoint:    f.URL + "/logout",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.mu.Lock()
		f.grants = append(f.grants, r.PostForm)
		fail := f.failRefresh && r.PostForm.Get("grant_type") == "refresh_token"
		refresh := f.refreshToken
		f.mu.Unlock()
		if fail {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-" + r.PostForm.Get("grant_type"),
			"refresh_token": refresh,
			"token_type":    "Bearer",
			"expires_in":    300,
			"id_token":      f.idToken(t),
		})
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeIssuer) idToken(t *testing.T) string {
	claims := jwt.MapClaims{
		"sub":               "oidc|7",
		"email":             "parent@example.com",
		"first_name":        "Hana",
		"last_name":         "Kim",
		"profile_image_url": "https://img.example.com/7.png",
		"exp":               f.idTokenExp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("issuer-key"))
	require.NoError(t, err)
	return signed
}

func (f *fakeIssuer) set(fn func(f *fakeIssuer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeIssuer) grantsSeen() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.grants...)
}

func newProvider(f *fakeIssuer) *OIDCProvider {
	return NewOIDCProvider(config.OIDCConfig{
		IssuerURL:    f.URL + "/",
		ClientID:     "mindconnect",
		ClientSecret: "shh",
		RedirectURL:  "http://localhost:8080/api/callback",
	}, f.Client())
}

func TestOIDCAuthCodeURL(t *testing.T) {
	f := newFakeIssuer(t)
	p := newProvider(f)

	raw, err := p.AuthCodeURL(context.Background(), "state-123")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "/auth", u.Path)
	q := u.Query()
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "mindconnect", q.Get("client_id"))
	require.Equal(t, "openid email profile offline_access", q.Get("scope"))
	require.Equal(t, "login consent", q.Get("prompt"))
}

func TestOIDCExchangeReadsIDTokenClaims(t *testing.T) {
	f := newFakeIssuer(t)
	p := newProvider(f)

	set, err := p.Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	require.Equal(t, "at-authorization_code", set.AccessToken)
	require.Equal(t, "rt-new", set.RefreshToken)
	require.NotNil(t, set.Claims)
	require.Equal(t, "oidc|7", set.Claims.Subject)
	require.Equal(t, "Hana", set.Claims.FirstName)
	require.Equal(t, f.idTokenExp.Unix(), set.Claims.ExpiresAt)
	require.True(t, set.expiry().Equal(f.idTokenExp))

	grants := f.grantsSeen()
	require.Len(t, grants, 1)
	require.Equal(t, "code-1", grants[0].Get("code"))
}

func TestOIDCRefresh(t *testing.T) {
	f := newFakeIssuer(t)
	f.set(func(f *fakeIssuer) { f.refreshToken = "" })
	p := newProvider(f)

	set, err := p.Refresh(context.Background(), "rt-old")
	require.NoError(t, err)
	require.Equal(t, "at-refresh_token", set.AccessToken)
	require.Equal(t, "rt-old", set.RefreshToken, "oauth2 keeps the old refresh token when none is returned")
	require.Equal(t, "rt-old", f.grantsSeen()[0].Get("refresh_token"))

	f.set(func(f *fakeIssuer) { f.failRefresh = true })
	_, err = p.Refresh(context.Background(), "rt-old")
	require.Error(t, err)
}

func TestOIDCGuardRefreshEndToEnd(t *testing.T) {
	f := newFakeIssuer(t)
	p := newProvider(f)
	saver := &memorySaver{}
	g := NewSessionGuard(p, saver, 5*time.Second, nil, nil)

	past := time.Now().Add(-time.Minute)
	state := SessionState{ID: "s1", UserID: "oidc|7", RefreshToken: "rt-old", ExpiresAt: &past}
	got, refreshed, err := g.Admit(context.Background(), &state)
	require.NoError(t, err)
	require.True(t, refreshed)
	require.Equal(t, "rt-new", got.RefreshToken)
	require.True(t, got.ExpiresAt.Equal(f.idTokenExp))
	require.Len(t, saver.saved, 1)

	f.set(func(f *fakeIssuer) { f.failRefresh = true })
	_, _, err = g.Admit(context.Background(), &state)
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestOIDCDiscoveryIsMemoized(t *testing.T) {
	f := newFakeIssuer(t)
	p := newProvider(f)
	now := time.Now()
	p.now = func() time.Time { return now }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Discover(context.Background())
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := p.Discover(context.Background())
	require.NoError(t, err)
	require.LessOrEqual(t, f.discoveries.Load(), int32(2))
	first := f.discoveries.Load()

	now = now.Add(2 * time.Hour)
	_, err = p.Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, first+1, f.discoveries.Load())
}

func TestOIDCEndSessionURL(t *testing.T) {
	f := newFakeIssuer(t)
	p := newProvider(f)

	raw, err := p.EndSessionURL(context.Background(), "http://localhost:8080/")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "/logout", u.Path)
	require.Equal(t, "http://localhost:8080/", u.Query().Get("post_logout_redirect_uri"))
}

func TestOIDCDiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	p := NewOIDCProvider(config.OIDCConfig{IssuerURL: srv.URL, ClientID: "x"}, srv.Client())

	_, err := p.AuthCodeURL(context.Background(), "s")
	require.Error(t, err)
}
