package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/slotbook/slotbook-api/internal/models"
)

// ScheduleRepository manages persistence for schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindByID fetches a schedule by its slug.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	const query = `SELECT id, title, icon, created_at FROM schedules WHERE id = $1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ExistsByID reports whether a slug is already taken.
func (r *ScheduleRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM schedules WHERE id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check schedule slug: %w", err)
	}
	return true, nil
}

// Create inserts a new schedule record.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedules (id, title, icon, created_at)
		VALUES (:id, :title, :icon, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Delete removes the schedule row. Appointments are deleted separately
// first; see ScheduleService.Delete for the two-phase contract.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
