package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nuuxixv/MindConnect/internal/logging"
	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{services.NewValidationError("answers.3", "must be a number"), http.StatusBadRequest, `{"message":"Invalid request","fields":[{"field":"answers.3","message":"must be a number"}]}`},
		{services.ErrSessionExpired, http.StatusUnauthorized, `{"message":"Session expired"}`},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, `{"message":"Invalid email or password"}`},
		{services.ErrUnauthorized, http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{services.ErrForbidden, http.StatusForbidden, `{"message":"Forbidden"}`},
		{fmt.Errorf("result %w", services.ErrNotFound), http.StatusNotFound, `{"message":"Result not found"}`},
		{fmt.Errorf("profile 4 has results: %w", services.ErrConflict), http.StatusConflict, `{"message":"Profile 4 has results"}`},
		{errors.New("disk on fire"), http.StatusInternalServerError, `{"message":"Internal server error"}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, logging.Discard(), tc.err)
		require.Equal(t, tc.status, w.Code, tc.err.Error())
		require.JSONEq(t, tc.body, w.Body.String())
	}
}

type bindProbe struct {
	Email string `json:"email" binding:"required,email"`
	Kind  string `json:"kind" binding:"required,oneof=a b"`
	Count uint   `json:"count"`
}

func bindBody(t *testing.T, body string) error {
	t.Helper()
	RegisterValidation()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var probe bindProbe
	return bindJSON(c, &probe)
}

func TestBindJSONReportsJSONFieldNames(t *testing.T) {
	err := bindBody(t, `{"email":"nope","kind":"c"}`)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []services.FieldError{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "kind", Message: "must be one of a, b"},
	}, verr.Fields)
}

func TestBindJSONTypeAndSyntaxErrors(t *testing.T) {
	var verr *services.ValidationError

	require.ErrorAs(t, bindBody(t, `{"email":"a@b.co","kind":"a","count":-1}`), &verr)
	require.Equal(t, "count", verr.Fields[0].Field)
	require.Equal(t, "must be a positive integer", verr.Fields[0].Message)

	require.ErrorAs(t, bindBody(t, `{"email":`), &verr)
	require.Equal(t, "body", verr.Fields[0].Field)

	require.ErrorAs(t, bindBody(t, ``), &verr)
	require.Equal(t, "request body is required", verr.Fields[0].Message)

	require.NoError(t, bindBody(t, `{"email":"a@b.co","kind":"b","count":2}`))
}
