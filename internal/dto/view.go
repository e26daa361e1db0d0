package dto

import (
	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/palette"
	"github.com/slotbook/slotbook-api/internal/timegrid"
)

// ScheduleView is the fully derived render model for one schedule: resolved
// config, slot axis and per-slot appointment blocks. Clients can paint it
// without re-implementing any interval arithmetic.
type ScheduleView struct {
	Schedule     models.Schedule      `json:"schedule"`
	Config       models.ViewConfig    `json:"config"`
	Slots        []SlotView           `json:"slots"`
	Appointments []models.Appointment `json:"appointments"`
}

// SlotView is one row of the grid.
type SlotView struct {
	Start  timegrid.TimeOfDay `json:"start"`
	Blocks []AppointmentBlock `json:"blocks"`
}

// AppointmentBlock positions one appointment within one slot row. First is
// set on the earliest occupied slot, where the label belongs; continuation
// rows render the bare colored region.
type AppointmentBlock struct {
	AppointmentID string             `json:"appointment_id"`
	Name          string             `json:"name"`
	StartTime     timegrid.TimeOfDay `json:"start_time"`
	EndTime       timegrid.TimeOfDay `json:"end_time"`
	First         bool               `json:"first"`
	Layout        timegrid.Block     `json:"layout"`
	Color         palette.Color      `json:"color"`
}
