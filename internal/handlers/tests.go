package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	assessment *services.AssessmentService
	log        *slog.Logger
}

func NewTestHandler(assessment *services.AssessmentService, log *slog.Logger) *TestHandler {
	return &TestHandler{assessment: assessment, log: log}
}

type SubmitRequest struct {
	ProfileID uint                       `json:"profileId" example:"1"`
	Answers   map[string]json.RawMessage `json:"answers" swaggertype:"object,number"`
	Summary   *string                    `json:"summary" example:"Felt tired this week"`
}

// ListTests godoc
// @Summary      List public tests
// @Tags         tests
// @Produce      json
// @Success      200 {array} Test
// @Router       /api/tests [get]
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.assessment.ListTests(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

// GetTest godoc
// @Summary      Get a test with its questions
// @Description  Questions are returned in presentation order
// @Tags         tests
// @Produce      json
// @Param        id path int true "Test ID"
// @Success      200 {object} TestDetail
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/tests/{id} [get]
func (h *TestHandler) GetTest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.assessment.GetTest(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SubmitTest godoc
// @Summary      Submit answers for a test
// @Description  Validates the answers, stores the summed score and returns the created result
// @Tags         tests
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path int true "Test ID"
// @Param        request body SubmitRequest true "Answers keyed by question id"
// @Success      201 {object} TestResult
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/tests/{id}/submit [post]
func (h *TestHandler) SubmitTest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req SubmitRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	result, err := h.assessment.Submit(c.Request.Context(), services.SubmitInput{
		TestID:    id,
		UserID:    currentUserID(c),
		ProfileID: req.ProfileID,
		Answers:   req.Answers,
		Summary:   req.Summary,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
