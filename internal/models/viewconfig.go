package models

import "github.com/slotbook/slotbook-api/internal/timegrid"

// AllowedGranularities lists the slot durations the grid supports, in
// minutes.
var AllowedGranularities = []int{5, 10, 15, 20, 30, 60}

// ViewConfig carries the rendering parameters for a schedule's day grid: the
// visible window and slot granularity. It is a per-schedule display
// preference, not an invariant-bearing entity; appointments outside the
// window still exist, they just scroll out of view.
type ViewConfig struct {
	WindowStart        timegrid.TimeOfDay `json:"window_start"`
	WindowEnd          timegrid.TimeOfDay `json:"window_end"`
	GranularityMinutes int                `json:"granularity_minutes"`
}

// GranularityAllowed reports whether the granularity is one of the supported
// slot durations.
func GranularityAllowed(minutes int) bool {
	for _, allowed := range AllowedGranularities {
		if minutes == allowed {
			return true
		}
	}
	return false
}
