package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "mc_session"

	ContextUserID  = "user_id"
	ContextSession = "session"
)

// SessionToken returns the session token from the cookie or, failing that,
// from an Authorization: Bearer header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionAuth resolves the request session and runs it through the guard.
// Admitted requests carry the session state in their context and the user id
// under ContextUserID.
func SessionAuth(authService *services.AuthService, guard *services.SessionGuard, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var principal *services.SessionState
		if token := SessionToken(c); token != "" {
			state, err := authService.Authenticate(ctx, token)
			switch {
			case err == nil:
				principal = &state
			case errors.Is(err, services.ErrUnauthorized):
				// no principal; the guard rejects below
			default:
				log.Error("load session", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
				return
			}
		}

		state, refreshed, err := guard.Admit(ctx, principal)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSessionExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired"})
			case errors.Is(err, services.ErrUnauthorized):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			default:
				log.Error("admit session", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			}
			return
		}
		if refreshed {
			log.Debug("session refreshed", "session_id", state.ID, "user_id", state.UserID)
		}

		c.Request = c.Request.WithContext(services.WithSession(ctx, state))
		c.Set(ContextSession, state)
		c.Set(ContextUserID, state.UserID)
		c.Next()
	}
}
