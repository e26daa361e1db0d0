package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/service"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
	"github.com/slotbook/slotbook-api/pkg/response"
)

type scheduleService interface {
	Get(ctx context.Context, id string) (*models.Schedule, error)
	Create(ctx context.Context, req service.CreateScheduleRequest) (*models.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleHandler wires schedule lifecycle operations to HTTP routes.
type ScheduleHandler struct {
	schedules scheduleService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(schedules scheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Create godoc
// @Summary Create a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	schedule, err := h.schedules.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Get godoc
// @Summary Get schedule metadata
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule slug"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// Delete godoc
// @Summary Delete a schedule and its appointments
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule slug"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
