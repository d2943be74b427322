package storage

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return !(e1 <= s2 || s1 >= e2)
}

// CheckOverlap checks whether the candidate interval on date collides with any
// entry on the same date. The entry with ID skipID is ignored so an edited
// record is never compared against itself.
// Returns the colliding entry, the overlap duration, and true if one is found.
func CheckOverlap(entries []Entry, date Date, start, end TimeOfDay, skipID string) (Entry, time.Duration, bool) {
	for _, existing := range entries {
		if existing.Date != date || (skipID != "" && existing.ID == skipID) {
			continue
		}
		if !Overlaps(start, end, existing.Start, existing.End) {
			continue
		}

		overlapStart := max(start, existing.Start)
		overlapEnd := min(end, existing.End)
		return existing, time.Duration(overlapEnd-overlapStart) * time.Minute, true
	}

	return Entry{}, 0, false
}
