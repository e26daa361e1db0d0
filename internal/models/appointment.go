package models

import (
	"sort"
	"time"

	"github.com/slotbook/slotbook-api/internal/timegrid"
)

// Appointment is a named reservation inside exactly one schedule. Start and
// end are wall-clock times on a single virtual day with start < end; per
// schedule the set is kept pairwise non-overlapping under half-open
// semantics.
type Appointment struct {
	ID         string             `db:"id" json:"id"`
	ScheduleID string             `db:"schedule_id" json:"schedule_id"`
	Name       string             `db:"name" json:"name"`
	StartTime  timegrid.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime    timegrid.TimeOfDay `db:"end_time" json:"end_time"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// Interval returns the appointment's half-open time range.
func (a Appointment) Interval() timegrid.Interval {
	return timegrid.Interval{Start: a.StartTime, End: a.EndTime}
}

// SortAppointments orders appointments by start time, breaking ties by id so
// rendering and z-ordering stay deterministic across refreshes.
func SortAppointments(appointments []Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].StartTime != appointments[j].StartTime {
			return appointments[i].StartTime < appointments[j].StartTime
		}
		return appointments[i].ID < appointments[j].ID
	})
}

// Intervals projects the appointments onto their time ranges for conflict
// checks.
func Intervals(appointments []Appointment) []timegrid.Interval {
	out := make([]timegrid.Interval, len(appointments))
	for i, a := range appointments {
		out[i] = a.Interval()
	}
	return out
}
