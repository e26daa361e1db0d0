package timegrid

// Block describes where an appointment sits inside one slot row, expressed
// as fractions of the slot height so rendering is resolution independent.
// An appointment spanning several consecutive slots produces a Block in
// each, and the fractions line up into one continuous region.
type Block struct {
	OffsetFraction float64 `json:"offsetFraction"`
	ExtentFraction float64 `json:"extentFraction"`
}

// OccupiesSlot reports whether the appointment interval overlaps the slot
// bucket [slotStart, slotStart+granularity) under half-open semantics.
func OccupiesSlot(a Interval, slotStart TimeOfDay, granularityMinutes int) bool {
	slot := Interval{Start: slotStart, End: slotStart.Add(granularityMinutes)}
	return a.Overlaps(slot)
}

// LayoutWithinSlot computes the appointment's offset and extent within the
// slot row. It is a pure rendering transform: it stays well-defined even
// when the appointment set is temporarily overlapping, so invalid data
// degrades to stacked blocks instead of a panic.
func LayoutWithinSlot(a Interval, slotStart TimeOfDay, granularityMinutes int) Block {
	g := float64(granularityMinutes)
	slotEnd := slotStart.Add(granularityMinutes)

	offset := float64(a.Start - slotStart)
	if offset < 0 {
		offset = 0
	}
	if offset > g {
		offset = g
	}

	start := a.Start
	if start < slotStart {
		start = slotStart
	}
	end := a.End
	if end > slotEnd {
		end = slotEnd
	}
	extent := float64(end - start)
	if extent < 0 {
		extent = 0
	}

	return Block{
		OffsetFraction: offset / g,
		ExtentFraction: extent / g,
	}
}
