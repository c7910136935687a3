package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nuuxixv/MindConnect/internal/middleware"
	"github.com/nuuxixv/MindConnect/internal/models"
	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Message string                `json:"message" example:"Not found"`
	Fields  []services.FieldError `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Seeded"`
}

// Type aliases so swag can resolve models in annotations.
type Test = models.Test
type Question = models.Question
type TestResult = models.TestResult
type Profile = models.Profile
type Post = models.Post
type Comment = models.Comment
type User = models.User
type TestDetail = services.TestDetail

// respondError maps service errors onto HTTP statuses. Anything outside the
// taxonomy is logged and answered with a generic 500.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request", Fields: verr.Fields})
	case errors.Is(err, services.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Session expired"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid email or password"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: capitalize(err.Error())})
	case errors.Is(err, services.ErrConflict):
		msg := strings.TrimSuffix(err.Error(), ": "+services.ErrConflict.Error())
		c.JSON(http.StatusConflict, ErrorResponse{Message: capitalize(msg)})
	default:
		_ = c.Error(err)
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}

// pathID parses a positive integer path parameter, answering 400 when it is
// not one.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request",
			Fields:  []services.FieldError{{Field: name, Message: "must be a positive integer"}},
		})
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
