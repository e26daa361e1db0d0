package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/palette"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

type scheduleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
}

type appointmentDeleter interface {
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}

type preferenceDeleter interface {
	Delete(ctx context.Context, scheduleID string) error
}

type slugGenerator interface {
	Next() string
}

// CreateScheduleRequest represents payload for creating schedules. The
// optional window fields seed the schedule's initial view preference.
type CreateScheduleRequest struct {
	Title              string `json:"title" validate:"required,max=120"`
	Icon               string `json:"icon" validate:"omitempty,max=16"`
	WindowStart        string `json:"window_start" validate:"omitempty"`
	WindowEnd          string `json:"window_end" validate:"omitempty"`
	GranularityMinutes int    `json:"granularity_minutes" validate:"omitempty"`
}

// ScheduleService orchestrates schedule lifecycle: slug allocation,
// metadata lookup and the two-phase cascading deletion.
type ScheduleService struct {
	repo         scheduleRepository
	appointments appointmentDeleter
	preferences  preferenceService
	prefStore    preferenceDeleter
	slugs        slugGenerator
	colors       *palette.Registry
	validator    *validator.Validate
	logger       *zap.Logger
	maxAttempts  int
}

type preferenceService interface {
	SaveParsed(ctx context.Context, scheduleID string, windowStart, windowEnd string, granularity int) error
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(
	repo scheduleRepository,
	appointments appointmentDeleter,
	preferences preferenceService,
	prefStore preferenceDeleter,
	slugs slugGenerator,
	colors *palette.Registry,
	validate *validator.Validate,
	logger *zap.Logger,
	maxAttempts int,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &ScheduleService{
		repo:         repo,
		appointments: appointments,
		preferences:  preferences,
		prefStore:    prefStore,
		slugs:        slugs,
		colors:       colors,
		validator:    validate,
		logger:       logger,
		maxAttempts:  maxAttempts,
	}
}

// Get returns schedule metadata by slug. An unknown slug maps to the
// NotFound state, distinct from transient store failures.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// Create allocates a fresh slug and inserts the schedule. Slug candidates
// are checked against the store and retried on collision up to the
// configured bound.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	id, err := s.allocateSlug(ctx)
	if err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		ID:    id,
		Title: strings.TrimSpace(req.Title),
		Icon:  strings.TrimSpace(req.Icon),
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}

	// Window supplied at creation becomes the initial view preference.
	// Preference storage is best effort: the schedule exists either way and
	// views fall back to defaults.
	if req.WindowStart != "" && req.WindowEnd != "" {
		if err := s.preferences.SaveParsed(ctx, schedule.ID, req.WindowStart, req.WindowEnd, req.GranularityMinutes); err != nil {
			s.logger.Warn("failed to store initial preference",
				zap.String("schedule_id", schedule.ID), zap.Error(err))
		}
	}

	return schedule, nil
}

// Delete removes a schedule and everything attached to it. The sequence is
// two store calls without a transaction: appointments first, then the
// schedule row. When the second call fails the appointments stay deleted;
// that partial state is surfaced as ErrPartiallyDeleted rather than rolled
// back or hidden.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.appointments.DeleteBySchedule(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete appointments")
	}

	if err := s.repo.Delete(ctx, id); err != nil && err != sql.ErrNoRows {
		return appErrors.Wrap(err, appErrors.ErrPartiallyDeleted.Code, appErrors.ErrPartiallyDeleted.Status, appErrors.ErrPartiallyDeleted.Message)
	}

	if s.prefStore != nil {
		if err := s.prefStore.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to delete preference", zap.String("schedule_id", id), zap.Error(err))
		}
	}
	if s.colors != nil {
		s.colors.Remove(id)
	}
	return nil
}

func (s *ScheduleService) allocateSlug(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate := s.slugs.Next()
		taken, err := s.repo.ExistsByID(ctx, candidate)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
		}
		if !taken {
			return candidate, nil
		}
		s.logger.Debug("slug collision, retrying", zap.String("slug", candidate))
	}
	return "", appErrors.Clone(appErrors.ErrConflict, "could not allocate a unique schedule id")
}
