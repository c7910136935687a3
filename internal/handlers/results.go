package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	assessment *services.AssessmentService
	log        *slog.Logger
}

func NewResultHandler(assessment *services.AssessmentService, log *slog.Logger) *ResultHandler {
	return &ResultHandler{assessment: assessment, log: log}
}

// ListResults godoc
// @Summary      List my results
// @Description  Newest first, each with its test and profile
// @Tags         results
// @Produce      json
// @Security     SessionCookie
// @Success      200 {array} TestResult
// @Failure      401 {object} ErrorResponse
// @Router       /api/results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	results, err := h.assessment.ListResults(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetResult godoc
// @Summary      Get one of my results
// @Tags         results
// @Produce      json
// @Security     SessionCookie
// @Param        id path int true "Result ID"
// @Success      200 {object} TestResult
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.assessment.GetResult(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
