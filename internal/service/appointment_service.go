package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/palette"
	"github.com/slotbook/slotbook-api/internal/timegrid"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

// minutesPerDay bounds appointments to the single virtual day.
const minutesPerDay = 24 * 60

type appointmentRepository interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}

type scheduleFinder interface {
	Get(ctx context.Context, id string) (*models.Schedule, error)
}

// BookAppointmentRequest represents a booking submission: who, when and for
// how long.
type BookAppointmentRequest struct {
	Name            string `json:"name" validate:"required,max=80"`
	StartTime       string `json:"start_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

// AppointmentService gates bookings through overlap validation and owns the
// bulk-delete flow.
type AppointmentService struct {
	repo      appointmentRepository
	schedules scheduleFinder
	colors    *palette.Registry
	validator *validator.Validate
	metrics   bookingRecorder
	logger    *zap.Logger
}

type bookingRecorder interface {
	RecordBooking(outcome string)
}

// NewAppointmentService constructs an AppointmentService.
func NewAppointmentService(
	repo appointmentRepository,
	schedules scheduleFinder,
	colors *palette.Registry,
	validate *validator.Validate,
	metrics bookingRecorder,
	logger *zap.Logger,
) *AppointmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		repo:      repo,
		schedules: schedules,
		colors:    colors,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// List returns a schedule's appointments in stable render order.
func (s *AppointmentService) List(ctx context.Context, scheduleID string) ([]models.Appointment, error) {
	if _, err := s.schedules.Get(ctx, scheduleID); err != nil {
		return nil, err
	}
	appointments, err := s.repo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	models.SortAppointments(appointments)
	return appointments, nil
}

// Book validates and persists one appointment. The overlap check runs
// against the appointment list fetched in this same call, never a cached
// copy; on conflict the store is not contacted. Two racing submissions can
// still both pass, since the store has no conditional insert, and the
// layout engine renders the resulting overlap instead of anything crashing.
func (s *AppointmentService) Book(ctx context.Context, scheduleID string, req BookAppointmentRequest) (*models.Appointment, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	start, err := timegrid.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end := start.Add(req.DurationMinutes)
	if end.Minutes() > minutesPerDay {
		return nil, appErrors.Clone(appErrors.ErrValidation, "appointment extends past the end of the day")
	}
	candidate := timegrid.Interval{Start: start, End: end}

	if _, err := s.schedules.Get(ctx, scheduleID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments")
	}

	if timegrid.ConflictsAny(candidate, models.Intervals(existing)) {
		s.recordBooking("conflict")
		return nil, appErrors.ErrSlotTaken
	}

	appointment := &models.Appointment{
		ScheduleID: scheduleID,
		Name:       req.Name,
		StartTime:  start,
		EndTime:    end,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		s.recordBooking("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create appointment")
	}

	s.recordBooking("accepted")
	s.logger.Info("appointment booked",
		zap.String("schedule_id", scheduleID),
		zap.String("appointment_id", appointment.ID),
		zap.String("start", appointment.StartTime.String()),
		zap.String("end", appointment.EndTime.String()),
	)
	return appointment, nil
}

// DeleteAll removes every appointment of a schedule and clears its color
// assignments together, so no render can pair a surviving color with a
// deleted appointment. Idempotent on an empty schedule.
func (s *AppointmentService) DeleteAll(ctx context.Context, scheduleID string) error {
	if _, err := s.schedules.Get(ctx, scheduleID); err != nil {
		return err
	}
	if err := s.repo.DeleteBySchedule(ctx, scheduleID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete appointments")
	}
	if s.colors != nil {
		s.colors.Reset(scheduleID)
	}
	return nil
}

func (s *AppointmentService) recordBooking(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordBooking(outcome)
	}
}
