package timegrid

// Slots returns the ordered slot axis for a visible window: the first slot
// starts at windowStart and each subsequent slot granularityMinutes later,
// continuing while the slot start is strictly before windowEnd.
//
// A window with windowStart >= windowEnd yields no slots. Slots are
// fixed-duration buckets: when the granularity does not divide the window,
// the last slot still spans its full duration past windowEnd rather than
// being clipped.
func Slots(windowStart, windowEnd TimeOfDay, granularityMinutes int) []TimeOfDay {
	if granularityMinutes <= 0 {
		return nil
	}
	if windowStart >= windowEnd {
		return nil
	}

	count := (int(windowEnd-windowStart) + granularityMinutes - 1) / granularityMinutes
	slots := make([]TimeOfDay, 0, count)
	for t := windowStart; t < windowEnd; t = t.Add(granularityMinutes) {
		slots = append(slots, t)
	}
	return slots
}
