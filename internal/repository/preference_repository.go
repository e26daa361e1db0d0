package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slotbook/slotbook-api/internal/models"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

const preferenceKeyPrefix = "slotbook:pref:"

// PreferenceRepository stores per-schedule view preferences in Redis. It is
// the server-side analogue of device-local preference storage: cheap,
// per-schedule key-value state that the relational store never sees.
type PreferenceRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreferenceRepository constructs a PreferenceRepository. A zero TTL
// keeps preferences until explicitly removed.
func NewPreferenceRepository(client *redis.Client, ttl time.Duration) *PreferenceRepository {
	return &PreferenceRepository{client: client, ttl: ttl}
}

// Get loads the stored ViewConfig for a schedule. Absence is reported as
// ErrCacheMiss so callers can fall back to request values or defaults.
func (r *PreferenceRepository) Get(ctx context.Context, scheduleID string) (*models.ViewConfig, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, preferenceKey(scheduleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get preference %s: %w", scheduleID, err)
	}

	var cfg models.ViewConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal preference %s: %w", scheduleID, err)
	}
	return &cfg, nil
}

// Set stores the ViewConfig for a schedule, replacing any previous value.
func (r *PreferenceRepository) Set(ctx context.Context, scheduleID string, cfg models.ViewConfig) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal preference %s: %w", scheduleID, err)
	}

	if err := r.client.Set(ctx, preferenceKey(scheduleID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set preference %s: %w", scheduleID, err)
	}
	return nil
}

// Delete removes a schedule's stored preference, used when the schedule
// itself is deleted.
func (r *PreferenceRepository) Delete(ctx context.Context, scheduleID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, preferenceKey(scheduleID)).Err(); err != nil {
		return fmt.Errorf("redis delete preference %s: %w", scheduleID, err)
	}
	return nil
}

func preferenceKey(scheduleID string) string {
	return preferenceKeyPrefix + scheduleID
}
