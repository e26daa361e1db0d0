package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/slotbook/slotbook-api/internal/models"
)

// AppointmentRepository manages persistence for appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// ListBySchedule returns a schedule's appointments ordered by start time,
// ties broken by id, so consumers see a deterministic sequence.
func (r *AppointmentRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.Appointment, error) {
	const query = `SELECT id, schedule_id, name, start_time, end_time, created_at
		FROM appointments WHERE schedule_id = $1 ORDER BY start_time ASC, id ASC`
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// Create inserts a new appointment record.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO appointments (id, schedule_id, name, start_time, end_time, created_at)
		VALUES (:id, :schedule_id, :name, :start_time, :end_time, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, appointment); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// DeleteBySchedule removes every appointment of a schedule. Deleting from an
// already-empty schedule is a no-op, not an error.
func (r *AppointmentRepository) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	const query = `DELETE FROM appointments WHERE schedule_id = $1`
	if _, err := r.db.ExecContext(ctx, query, scheduleID); err != nil {
		return fmt.Errorf("delete appointments: %w", err)
	}
	return nil
}
