package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nuuxixv/MindConnect/internal/database"
	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SeedHandler struct {
	db         *gorm.DB
	catalog    *database.Catalog
	assessment *services.AssessmentService
	log        *slog.Logger
}

func NewSeedHandler(db *gorm.DB, catalog *database.Catalog, assessment *services.AssessmentService, log *slog.Logger) *SeedHandler {
	return &SeedHandler{db: db, catalog: catalog, assessment: assessment, log: log}
}

// Seed godoc
// @Summary      Seed the test catalog
// @Description  Inserts the bundled questionnaires when no tests exist yet
// @Tags         admin
// @Produce      json
// @Success      200 {object} MessageResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	seeded, err := database.Seed(c.Request.Context(), h.db, h.catalog)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !seeded {
		c.JSON(http.StatusOK, MessageResponse{Message: "Already seeded"})
		return
	}
	h.assessment.InvalidateCatalog()
	h.log.Info("test catalog seeded", "tests", len(h.catalog.Tests))
	c.JSON(http.StatusOK, MessageResponse{Message: "Seeded"})
}
