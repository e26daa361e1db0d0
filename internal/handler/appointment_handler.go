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

type appointmentService interface {
	List(ctx context.Context, scheduleID string) ([]models.Appointment, error)
	Book(ctx context.Context, scheduleID string, req service.BookAppointmentRequest) (*models.Appointment, error)
	DeleteAll(ctx context.Context, scheduleID string) error
}

// AppointmentHandler wires booking operations to HTTP routes.
type AppointmentHandler struct {
	appointments appointmentService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(appointments appointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// List godoc
// @Summary List a schedule's appointments
// @Tags Appointments
// @Produce json
// @Param id path string true "Schedule slug"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointments)
}

// Book godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Schedule slug"
// @Param payload body service.BookAppointmentRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Requested interval overlaps an existing appointment"
// @Router /schedules/{id}/appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req service.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	appointment, err := h.appointments.Book(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appointment)
}

// DeleteAll godoc
// @Summary Delete all appointments of a schedule
// @Tags Appointments
// @Produce json
// @Param id path string true "Schedule slug"
// @Success 204
// @Router /schedules/{id}/appointments [delete]
func (h *AppointmentHandler) DeleteAll(c *gin.Context) {
	if err := h.appointments.DeleteAll(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
