package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nuuxixv/MindConnect/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	log      *slog.Logger
}

func NewProfileHandler(profiles *services.ProfileService, log *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

type CreateProfileRequest struct {
	Name      string     `json:"name" binding:"required,max=100" example:"Minji"`
	Relation  string     `json:"relation" binding:"required,oneof=self spouse child" example:"child"`
	BirthDate *time.Time `json:"birthDate" example:"2017-04-02T00:00:00Z"`
	Gender    *string    `json:"gender" binding:"omitempty,max=20" example:"female"`
}

// ListProfiles godoc
// @Summary      List my family profiles
// @Tags         profiles
// @Produce      json
// @Security     SessionCookie
// @Success      200 {array} Profile
// @Failure      401 {object} ErrorResponse
// @Router       /api/profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// CreateProfile godoc
// @Summary      Add a family profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body CreateProfileRequest true "Profile data"
// @Success      201 {object} Profile
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	profile, err := h.profiles.Create(c.Request.Context(), currentUserID(c), services.ProfileInput{
		Name:      req.Name,
		Relation:  req.Relation,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// DeleteProfile godoc
// @Summary      Delete a family profile
// @Description  Profiles that still have results cannot be deleted
// @Tags         profiles
// @Security     SessionCookie
// @Param        id path int true "Profile ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/profiles/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
