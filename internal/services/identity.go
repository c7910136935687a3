package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nuuxixv/MindConnect/internal/config"
	"github.com/nuuxixv/MindConnect/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	discoveryTTL      = time.Hour
	oidcHTTPTimeout   = 10 * time.Second
	maxOIDCErrorBody  = int64(1 << 20) // 1 MiB
	discoveryFlightID = "discovery"
)

var oidcScopes = []string{"openid", "email", "profile", "offline_access"}

// Discovery is the subset of the OpenID provider metadata the service uses.
type Discovery struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	EndSessionEndpoint    string `json:"end_session_endpoint,omitempty"`
}

// OIDCProvider talks to an OpenID Connect issuer through the authorization
// code flow. The discovery document is cached for an hour and concurrent
// fetches share one request.
type OIDCProvider struct {
	cfg    config.OIDCConfig
	client *http.Client
	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group

	mu        sync.Mutex
	doc       *Discovery
	fetchedAt time.Time
}

func NewOIDCProvider(cfg config.OIDCConfig, client *http.Client) *OIDCProvider {
	if client == nil {
		client = &http.Client{Timeout: oidcHTTPTimeout}
	}
	cfg.IssuerURL = strings.TrimRight(strings.TrimSpace(cfg.IssuerURL), "/")
	return &OIDCProvider{
		cfg:    cfg,
		client: client,
		ttl:    discoveryTTL,
		now:    time.Now,
	}
}

func (p *OIDCProvider) Discover(ctx context.Context) (*Discovery, error) {
	p.mu.Lock()
	if p.doc != nil && p.now().Sub(p.fetchedAt) < p.ttl {
		doc := p.doc
		p.mu.Unlock()
		return doc, nil
	}
	p.mu.Unlock()

	v, err, _ := p.group.Do(discoveryFlightID, func() (any, error) {
		doc, err := p.fetchDiscovery(ctx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.doc = doc
		p.fetchedAt = p.now()
		p.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Discovery), nil
}

func (p *OIDCProvider) fetchDiscovery(ctx context.Context) (*Discovery, error) {
	if p.cfg.IssuerURL == "" {
		return nil, errors.New("oidc: issuer url is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.IssuerURL+"/.well-known/openid-configuration", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oidc: discovery request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxOIDCErrorBody))
		return nil, fmt.Errorf("oidc: discovery failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc Discovery
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("oidc: decode discovery document: %w", err)
	}
	if doc.AuthorizationEndpoint == "" || doc.TokenEndpoint == "" {
		return nil, errors.New("oidc: discovery document missing endpoints")
	}
	return &doc, nil
}

func (p *OIDCProvider) oauthConfig(ctx context.Context) (*oauth2.Config, error) {
	doc, err := p.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURL:  p.cfg.RedirectURL,
		Scopes:       oidcScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  doc.AuthorizationEndpoint,
			TokenURL: doc.TokenEndpoint,
		},
	}, nil
}

func (p *OIDCProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.client)
}

func (p *OIDCProvider) AuthCodeURL(ctx context.Context, state string) (string, error) {
	conf, err := p.oauthConfig(ctx)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "login consent")), nil
}

func (p *OIDCProvider) Exchange(ctx context.Context, code string) (*TokenSet, error) {
	conf, err := p.oauthConfig(ctx)
	if err != nil {
		return nil, err
	}
	tok, err := conf.Exchange(p.clientContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("oidc: code exchange: %w", err)
	}
	set, err := tokenSetFrom(tok)
	if err != nil {
		return nil, err
	}
	if set.Claims == nil || set.Claims.Subject == "" {
		return nil, errors.New("oidc: token response missing id_token subject")
	}
	return set, nil
}

// Refresh performs one refresh-token grant. A response without a new refresh
// token leaves the caller's existing one in place.
func (p *OIDCProvider) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	conf, err := p.oauthConfig(ctx)
	if err != nil {
		return nil, err
	}
	tok, err := conf.TokenSource(p.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("oidc: refresh grant: %w", err)
	}
	return tokenSetFrom(tok)
}

// EndSessionURL returns the provider logout URL, or "" when the provider does
// not advertise one.
func (p *OIDCProvider) EndSessionURL(ctx context.Context, postLogoutRedirect string) (string, error) {
	doc, err := p.Discover(ctx)
	if err != nil {
		return "", err
	}
	if doc.EndSessionEndpoint == "" {
		return "", nil
	}
	u, err := url.Parse(doc.EndSessionEndpoint)
	if err != nil {
		return "", fmt.Errorf("oidc: end session endpoint: %w", err)
	}
	q := u.Query()
	q.Set("client_id", p.cfg.ClientID)
	if postLogoutRedirect != "" {
		q.Set("post_logout_redirect_uri", postLogoutRedirect)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type idTokenClaims struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	jwt.RegisteredClaims
}

func tokenSetFrom(tok *oauth2.Token) (*TokenSet, error) {
	set := &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return set, nil
	}
	set.IDToken = raw

	// The id_token arrives directly from the token endpoint, so only its
	// claims are read here.
	var claims idTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("oidc: parse id_token: %w", err)
	}
	sc := models.SessionClaims{
		Subject:         claims.Subject,
		Email:           claims.Email,
		FirstName:       claims.FirstName,
		LastName:        claims.LastName,
		ProfileImageURL: claims.ProfileImageURL,
	}
	if claims.ExpiresAt != nil {
		sc.ExpiresAt = claims.ExpiresAt.Unix()
	}
	set.Claims = &sc
	return set, nil
}
