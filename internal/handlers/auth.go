package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nuuxixv/MindConnect/internal/middleware"
	"github.com/nuuxixv/MindConnect/internal/models"
	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	stateCookie    = "mc_oidc_state"
	stateCookieTTL = 10 * time.Minute
)

type AuthHandler struct {
	authService   *services.AuthService
	oidc          *services.OIDCProvider
	secureCookies bool
	log           *slog.Logger
}

// NewAuthHandler builds the auth endpoints. oidc is nil when no identity
// provider is configured; the redirect flow is then unavailable.
func NewAuthHandler(authService *services.AuthService, oidc *services.OIDCProvider, secureCookies bool, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, oidc: oidc, secureCookies: secureCookies, log: log}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"parent@example.com"`
	Password  string `json:"password" binding:"required,min=6" example:"password123"`
	FirstName string `json:"firstName" binding:"max=100" example:"Hana"`
	LastName  string `json:"lastName" binding:"max=100" example:"Kim"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"parent@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sess *services.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.Token, maxAge, "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", h.secureCookies, true)
}

// Register godoc
// @Summary      Register a local account
// @Description  Create an account, start a session and set the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	user, sess, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, sess)
	c.JSON(http.StatusCreated, AuthResponse{User: user, Token: sess.Token})
}

// Login godoc
// @Summary      Log in with a local account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login data"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	user, sess, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, sess)
	c.JSON(http.StatusOK, AuthResponse{User: user, Token: sess.Token})
}

// BeginLogin godoc
// @Summary      Start the identity provider login
// @Description  Redirects to the provider authorization endpoint
// @Tags         auth
// @Success      302
// @Failure      404 {object} ErrorResponse
// @Router       /api/login [get]
func (h *AuthHandler) BeginLogin(c *gin.Context) {
	if h.oidc == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Identity provider login is not configured"})
		return
	}

	state := uuid.NewString()
	target, err := h.oidc.AuthCodeURL(c.Request.Context(), state)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateCookieTTL.Seconds()), "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, target)
}

// Callback godoc
// @Summary      Identity provider callback
// @Description  Exchanges the authorization code, upserts the user and starts a session
// @Tags         auth
// @Param        code query string true "Authorization code"
// @Param        state query string true "State"
// @Success      302
// @Failure      400 {object} ErrorResponse
// @Router       /api/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	if h.oidc == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Identity provider login is not configured"})
		return
	}

	expected, _ := c.Cookie(stateCookie)
	h.clearCookie(c, stateCookie)
	if expected == "" || c.Query("state") != expected {
		respondError(c, h.log, services.NewValidationError("state", "does not match the login request"))
		return
	}
	if reason := c.Query("error"); reason != "" || c.Query("code") == "" {
		h.log.Info("identity provider declined login", "error", reason)
		c.Redirect(http.StatusFound, "/api/login")
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.oidc.Exchange(ctx, c.Query("code"))
	if err != nil {
		h.log.Warn("code exchange failed", "error", err)
		c.Redirect(http.StatusFound, "/api/login")
		return
	}
	user, err := h.authService.UpsertUser(ctx, *tokens.Claims)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	sess, err := h.authService.StartSession(ctx, user.ID, tokens)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, "/")
}

// Logout godoc
// @Summary      Log out
// @Description  Deletes the session and redirects to the provider logout page when there is one
// @Tags         auth
// @Success      302
// @Router       /api/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if token := middleware.SessionToken(c); token != "" {
		if sid, err := h.authService.ValidateToken(token); err == nil {
			if err := h.authService.Logout(ctx, sid); err != nil {
				h.log.Error("delete session", "error", err)
			}
		}
	}
	h.clearCookie(c, middleware.SessionCookie)

	target := "/"
	if h.oidc != nil {
		scheme := "http"
		if c.Request.TLS != nil || h.secureCookies {
			scheme = "https"
		}
		endSession, err := h.oidc.EndSessionURL(ctx, scheme+"://"+c.Request.Host+"/")
		if err != nil {
			h.log.Warn("resolve end session url", "error", err)
		} else if endSession != "" {
			target = endSession
		}
	}
	c.Redirect(http.StatusFound, target)
}

// CurrentUser godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} User
// @Failure      401 {object} ErrorResponse
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
