// Package booking implements the availability engine: half-open interval
// overlap detection for room reservations on a single calendar date.
package booking

// Slot is a half-open [Start, End) time window within one day. Start and End
// are "HH:MM" strings whose lexicographic order equals their chronological
// order.
type Slot struct {
	BookingID string
	Start     string
	End       string
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints ([09:00,10:00) and [10:00,11:00)) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// FindConflict returns the first existing slot that overlaps the candidate
// window. The second return value reports whether a conflict was found.
func FindConflict(existing []Slot, start, end string) (Slot, bool) {
	for _, slot := range existing {
		if Overlaps(start, end, slot.Start, slot.End) {
			return slot, true
		}
	}
	return Slot{}, false
}
