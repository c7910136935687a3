package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nuuxixv/MindConnect/internal/metrics"
	"github.com/nuuxixv/MindConnect/internal/models"
)

// SessionState is the principal attached to an authenticated request. It is
// a value: a refresh builds a new state instead of editing the old one.
type SessionState struct {
	ID           string
	UserID       string
	Claims       models.SessionClaims
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// Expired reports whether the identity token expiry lies strictly before now.
// A state without an expiry never expires here; the session record TTL still
// applies.
func (s SessionState) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

func (s SessionState) withTokens(tokens *TokenSet) SessionState {
	next := s
	next.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		next.RefreshToken = tokens.RefreshToken
	}
	if tokens.Claims != nil {
		claims := *tokens.Claims
		if claims.Subject == "" {
			claims.Subject = s.Claims.Subject
		}
		next.Claims = claims
	}
	if exp := tokens.expiry(); !exp.IsZero() {
		next.ExpiresAt = &exp
	} else {
		next.ExpiresAt = nil
	}
	return next
}

type sessionKey struct{}

func WithSession(ctx context.Context, state SessionState) context.Context {
	return context.WithValue(ctx, sessionKey{}, state)
}

func SessionFromContext(ctx context.Context) (SessionState, bool) {
	state, ok := ctx.Value(sessionKey{}).(SessionState)
	return state, ok
}

// TokenSet is what the identity provider returns from a code exchange or a
// refresh grant.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       time.Time
	Claims       *models.SessionClaims
}

// expiry prefers the id-token exp claim over the access-token lifetime.
func (t *TokenSet) expiry() time.Time {
	if t.Claims != nil && t.Claims.ExpiresAt > 0 {
		return time.Unix(t.Claims.ExpiresAt, 0).UTC()
	}
	return t.Expiry
}

type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)
}

type SessionSaver interface {
	Save(ctx context.Context, state SessionState) error
}

type SessionGuard struct {
	refresher TokenRefresher
	store     SessionSaver
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       *slog.Logger
	now       func() time.Time
}

// NewSessionGuard builds a guard. refresher may be nil, in which case expired
// sessions are always rejected.
func NewSessionGuard(refresher TokenRefresher, store SessionSaver, timeout time.Duration, m *metrics.Metrics, log *slog.Logger) *SessionGuard {
	if log == nil {
		log = slog.Default()
	}
	return &SessionGuard{
		refresher: refresher,
		store:     store,
		timeout:   timeout,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// Admit decides whether the request principal may proceed. It returns the
// state to attach to the request and whether a refresh produced it. At most
// one refresh is attempted and its failure is final for the request.
func (g *SessionGuard) Admit(ctx context.Context, state *SessionState) (SessionState, bool, error) {
	if state == nil || state.UserID == "" {
		return SessionState{}, false, ErrUnauthorized
	}
	if !state.Expired(g.now()) {
		return *state, false, nil
	}
	if state.RefreshToken == "" || g.refresher == nil {
		return SessionState{}, false, ErrSessionExpired
	}

	refreshCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		refreshCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	tokens, err := g.refresher.Refresh(refreshCtx, state.RefreshToken)
	if err != nil {
		g.metrics.Refresh("failed")
		g.log.Info("session refresh failed", "session_id", state.ID, "user_id", state.UserID, "error", err)
		return SessionState{}, false, ErrSessionExpired
	}

	next := state.withTokens(tokens)
	if next.Expired(g.now()) {
		g.metrics.Refresh("failed")
		g.log.Info("session refresh returned expired tokens", "session_id", state.ID)
		return SessionState{}, false, ErrSessionExpired
	}
	if g.store != nil {
		if err := g.store.Save(ctx, next); err != nil {
			g.metrics.Refresh("failed")
			return SessionState{}, false, fmt.Errorf("persist refreshed session: %w", err)
		}
	}
	g.metrics.Refresh("succeeded")
	return next, true, nil
}
