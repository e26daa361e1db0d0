package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slotbook/slotbook-api/internal/dto"
	"github.com/slotbook/slotbook-api/internal/service"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
	"github.com/slotbook/slotbook-api/pkg/response"
)

type viewService interface {
	BuildView(ctx context.Context, scheduleID string, overrides service.ViewOverrides) (*dto.ScheduleView, error)
}

// ViewHandler serves the fully derived day-grid render model.
type ViewHandler struct {
	views viewService
}

// NewViewHandler constructs a ViewHandler.
func NewViewHandler(views viewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// Get godoc
// @Summary Get the derived day grid for a schedule
// @Tags Views
// @Produce json
// @Param id path string true "Schedule slug"
// @Param start query string false "Window start override (HH:MM)"
// @Param end query string false "Window end override (HH:MM)"
// @Param granularity query int false "Slot granularity override (minutes)"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/view [get]
func (h *ViewHandler) Get(c *gin.Context) {
	overrides := service.ViewOverrides{
		WindowStart: c.Query("start"),
		WindowEnd:   c.Query("end"),
	}
	if raw := c.Query("granularity"); raw != "" {
		granularity, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "granularity must be an integer"))
			return
		}
		overrides.Granularity = granularity
	}

	view, err := h.views.BuildView(c.Request.Context(), c.Param("id"), overrides)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
