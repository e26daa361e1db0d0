// Package timegrid implements the day-grid arithmetic behind shared
// schedules: wall-clock times, half-open intervals, slot generation and
// per-slot layout. Everything here is pure and allocation-light so the
// view layer can re-derive the grid on every request.
package timegrid

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock instant within a single virtual day, stored as
// minutes since midnight. The date component of any source value is ignored.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", raw, err)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Add returns the time shifted forward by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// String renders the canonical "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON encodes the time as its "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer for TIME columns.
func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as strings or
// byte slices depending on the driver; timestamps are accepted and reduced
// to their clock component.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case time.Time:
		*t = TimeOfDay(v.Hour()*60 + v.Minute())
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) scanString(raw string) error {
	// "15:04:05" from TIME columns; tolerate a fractional suffix.
	if idx := strings.IndexByte(raw, '.'); idx > 0 {
		raw = raw[:idx]
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = TimeOfDay(parsed.Hour()*60 + parsed.Minute())
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into TimeOfDay", raw)
}
