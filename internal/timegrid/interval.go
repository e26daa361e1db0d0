package timegrid

// Interval is a half-open time range [Start, End). Adjacent intervals that
// merely touch at an endpoint do not overlap.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return int(i.End - i.Start)
}

// Overlaps reports whether two half-open intervals share any instant:
// [a,b) overlaps [c,d) iff a < d && c < b.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// ConflictsAny reports whether the candidate interval overlaps any existing
// interval. Callers must evaluate this against the freshly fetched
// appointment set; the store provides no transactional guard, so validating
// a stale list can admit a lost update.
//
// The candidate is assumed to satisfy Start < End; inverted or empty
// intervals are rejected upstream.
func ConflictsAny(candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return true
		}
	}
	return false
}
