package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotbook/slotbook-api/internal/models"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
	"github.com/slotbook/slotbook-api/pkg/response"
)

type preferenceAPI interface {
	Get(ctx context.Context, scheduleID string) (models.ViewConfig, error)
	SaveParsed(ctx context.Context, scheduleID string, windowStart, windowEnd string, granularity int) error
}

type scheduleChecker interface {
	Get(ctx context.Context, id string) (*models.Schedule, error)
}

// SavePreferenceRequest represents payload for storing a view preference.
type SavePreferenceRequest struct {
	WindowStart        string `json:"window_start" binding:"required"`
	WindowEnd          string `json:"window_end" binding:"required"`
	GranularityMinutes int    `json:"granularity_minutes"`
}

// PreferenceHandler wires view-preference storage to HTTP routes.
type PreferenceHandler struct {
	preferences preferenceAPI
	schedules   scheduleChecker
}

// NewPreferenceHandler constructs a PreferenceHandler.
func NewPreferenceHandler(preferences preferenceAPI, schedules scheduleChecker) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences, schedules: schedules}
}

// Get godoc
// @Summary Get a schedule's view preference
// @Tags Preferences
// @Produce json
// @Param id path string true "Schedule slug"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	scheduleID := c.Param("id")
	if _, err := h.schedules.Get(c.Request.Context(), scheduleID); err != nil {
		response.Error(c, err)
		return
	}

	cfg, err := h.preferences.Get(c.Request.Context(), scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// Save godoc
// @Summary Store a schedule's view preference
// @Tags Preferences
// @Accept json
// @Produce json
// @Param id path string true "Schedule slug"
// @Param payload body SavePreferenceRequest true "Preference payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/preferences [put]
func (h *PreferenceHandler) Save(c *gin.Context) {
	scheduleID := c.Param("id")
	if _, err := h.schedules.Get(c.Request.Context(), scheduleID); err != nil {
		response.Error(c, err)
		return
	}

	var req SavePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	if err := h.preferences.SaveParsed(c.Request.Context(), scheduleID, req.WindowStart, req.WindowEnd, req.GranularityMinutes); err != nil {
		response.Error(c, err)
		return
	}

	cfg, err := h.preferences.Get(c.Request.Context(), scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}
