package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/timegrid"
	"github.com/slotbook/slotbook-api/pkg/config"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

type preferenceStore interface {
	Get(ctx context.Context, scheduleID string) (*models.ViewConfig, error)
	Set(ctx context.Context, scheduleID string, cfg models.ViewConfig) error
}

// ViewOverrides carries the optional query-parameter window supplied with a
// view request. Empty fields leave the resolved value untouched.
type ViewOverrides struct {
	WindowStart string
	WindowEnd   string
	Granularity int
}

// PreferenceService resolves and persists per-schedule view configuration.
// Resolution order: stored preference, then request overrides, then the
// configured defaults. Every explicit save goes back to the store so the
// next load starts from it.
type PreferenceService struct {
	store    preferenceStore
	defaults models.ViewConfig
	logger   *zap.Logger
}

// NewPreferenceService constructs a PreferenceService. Malformed defaults in
// the config fall back to the 09:00-17:00 / 15 minute window.
func NewPreferenceService(store preferenceStore, cfg config.BookingConfig, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}

	defaults := models.ViewConfig{
		WindowStart:        9 * 60,
		WindowEnd:          17 * 60,
		GranularityMinutes: 15,
	}
	if start, err := timegrid.ParseTimeOfDay(cfg.DefaultWindowStart); err == nil {
		defaults.WindowStart = start
	}
	if end, err := timegrid.ParseTimeOfDay(cfg.DefaultWindowEnd); err == nil {
		defaults.WindowEnd = end
	}
	if models.GranularityAllowed(cfg.DefaultGranularity) {
		defaults.GranularityMinutes = cfg.DefaultGranularity
	}

	return &PreferenceService{store: store, defaults: defaults, logger: logger}
}

// Defaults returns the fallback configuration.
func (s *PreferenceService) Defaults() models.ViewConfig {
	return s.defaults
}

// Get returns the stored preference for a schedule, or the defaults when
// none is stored. Store failures degrade to defaults rather than failing
// the view.
func (s *PreferenceService) Get(ctx context.Context, scheduleID string) (models.ViewConfig, error) {
	stored, err := s.store.Get(ctx, scheduleID)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("preference load failed, using defaults",
				zap.String("schedule_id", scheduleID), zap.Error(err))
		}
		return s.defaults, nil
	}
	return *stored, nil
}

// Resolve applies request overrides on top of the stored-or-default
// configuration. Overrides are consumed once per request and are not
// persisted; saving is an explicit act.
func (s *PreferenceService) Resolve(ctx context.Context, scheduleID string, overrides ViewOverrides) (models.ViewConfig, error) {
	cfg, _ := s.Get(ctx, scheduleID)

	if overrides.WindowStart != "" {
		start, err := timegrid.ParseTimeOfDay(overrides.WindowStart)
		if err != nil {
			return models.ViewConfig{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window start")
		}
		cfg.WindowStart = start
	}
	if overrides.WindowEnd != "" {
		end, err := timegrid.ParseTimeOfDay(overrides.WindowEnd)
		if err != nil {
			return models.ViewConfig{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window end")
		}
		cfg.WindowEnd = end
	}
	if overrides.Granularity != 0 {
		if !models.GranularityAllowed(overrides.Granularity) {
			return models.ViewConfig{}, appErrors.Clone(appErrors.ErrValidation, granularityMessage(overrides.Granularity))
		}
		cfg.GranularityMinutes = overrides.Granularity
	}

	return cfg, nil
}

// SaveParsed validates raw window values and persists them as the
// schedule's preference. A zero granularity keeps the default.
func (s *PreferenceService) SaveParsed(ctx context.Context, scheduleID string, windowStart, windowEnd string, granularity int) error {
	start, err := timegrid.ParseTimeOfDay(windowStart)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window start")
	}
	end, err := timegrid.ParseTimeOfDay(windowEnd)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window end")
	}
	if granularity == 0 {
		granularity = s.defaults.GranularityMinutes
	}
	if !models.GranularityAllowed(granularity) {
		return appErrors.Clone(appErrors.ErrValidation, granularityMessage(granularity))
	}

	cfg := models.ViewConfig{
		WindowStart:        start,
		WindowEnd:          end,
		GranularityMinutes: granularity,
	}
	if err := s.store.Set(ctx, scheduleID, cfg); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save preference")
	}
	return nil
}

func granularityMessage(minutes int) string {
	return fmt.Sprintf("granularity %d is not supported; allowed: %v", minutes, models.AllowedGranularities)
}
