package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/pkg/config"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

type preferenceStoreStub struct {
	stored map[string]models.ViewConfig
	getErr error
	setErr error
}

func (s *preferenceStoreStub) Get(ctx context.Context, scheduleID string) (*models.ViewConfig, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if cfg, ok := s.stored[scheduleID]; ok {
		return &cfg, nil
	}
	return nil, appErrors.ErrCacheMiss
}

func (s *preferenceStoreStub) Set(ctx context.Context, scheduleID string, cfg models.ViewConfig) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.stored == nil {
		s.stored = map[string]models.ViewConfig{}
	}
	s.stored[scheduleID] = cfg
	return nil
}

func defaultBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		DefaultWindowStart: "09:00",
		DefaultWindowEnd:   "17:00",
		DefaultGranularity: 15,
	}
}

func TestPreferenceServiceGetDefaults(t *testing.T) {
	service := NewPreferenceService(&preferenceStoreStub{}, defaultBookingConfig(), zap.NewNop())

	cfg, err := service.Get(context.Background(), "brave-otter-07")
	require.NoError(t, err)
	assert.Equal(t, 9*60, cfg.WindowStart.Minutes())
	assert.Equal(t, 17*60, cfg.WindowEnd.Minutes())
	assert.Equal(t, 15, cfg.GranularityMinutes)
}

func TestPreferenceServiceMalformedDefaults(t *testing.T) {
	service := NewPreferenceService(&preferenceStoreStub{}, config.BookingConfig{
		DefaultWindowStart: "whenever",
		DefaultWindowEnd:   "later",
		DefaultGranularity: 7,
	}, zap.NewNop())

	cfg := service.Defaults()
	assert.Equal(t, 9*60, cfg.WindowStart.Minutes())
	assert.Equal(t, 17*60, cfg.WindowEnd.Minutes())
	assert.Equal(t, 15, cfg.GranularityMinutes)
}

func TestPreferenceServiceGetStored(t *testing.T) {
	store := &preferenceStoreStub{}
	service := NewPreferenceService(store, defaultBookingConfig(), zap.NewNop())

	require.NoError(t, service.SaveParsed(context.Background(), "brave-otter-07", "10:00", "14:00", 30))

	cfg, err := service.Get(context.Background(), "brave-otter-07")
	require.NoError(t, err)
	assert.Equal(t, 10*60, cfg.WindowStart.Minutes())
	assert.Equal(t, 14*60, cfg.WindowEnd.Minutes())
	assert.Equal(t, 30, cfg.GranularityMinutes)
}

func TestPreferenceServiceGetStoreFailureDegrades(t *testing.T) {
	store := &preferenceStoreStub{getErr: errors.New("redis down")}
	service := NewPreferenceService(store, defaultBookingConfig(), zap.NewNop())

	cfg, err := service.Get(context.Background(), "brave-otter-07")
	require.NoError(t, err)
	assert.Equal(t, service.Defaults(), cfg)
}

func TestPreferenceServiceResolveOverrides(t *testing.T) {
	service := NewPreferenceService(&preferenceStoreStub{}, defaultBookingConfig(), zap.NewNop())

	cfg, err := service.Resolve(context.Background(), "brave-otter-07", ViewOverrides{
		WindowStart: "08:00",
		Granularity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 8*60, cfg.WindowStart.Minutes())
	// Untouched override fields keep the resolved base.
	assert.Equal(t, 17*60, cfg.WindowEnd.Minutes())
	assert.Equal(t, 30, cfg.GranularityMinutes)
}

func TestPreferenceServiceResolveInvalidOverrides(t *testing.T) {
	service := NewPreferenceService(&preferenceStoreStub{}, defaultBookingConfig(), zap.NewNop())

	_, err := service.Resolve(context.Background(), "brave-otter-07", ViewOverrides{WindowStart: "late"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = service.Resolve(context.Background(), "brave-otter-07", ViewOverrides{Granularity: 7})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPreferenceServiceSaveParsedDefaultsGranularity(t *testing.T) {
	store := &preferenceStoreStub{}
	service := NewPreferenceService(store, defaultBookingConfig(), zap.NewNop())

	require.NoError(t, service.SaveParsed(context.Background(), "brave-otter-07", "10:00", "14:00", 0))
	assert.Equal(t, 15, store.stored["brave-otter-07"].GranularityMinutes)
}

func TestPreferenceServiceSaveParsedValidation(t *testing.T) {
	service := NewPreferenceService(&preferenceStoreStub{}, defaultBookingConfig(), zap.NewNop())

	err := service.SaveParsed(context.Background(), "brave-otter-07", "nope", "14:00", 15)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = service.SaveParsed(context.Background(), "brave-otter-07", "10:00", "14:00", 25)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
