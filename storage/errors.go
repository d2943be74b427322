package storage

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOverlapConflict indicates a candidate interval intersects an existing
	// record on the same date.
	ErrOverlapConflict = errors.New("time conflict with an existing activity")
	// ErrInvalidTimeRange indicates end <= start or an interval crossing midnight.
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrMissingField indicates a required field was absent or empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue indicates a field was present but could not be parsed.
	ErrInvalidValue = errors.New("invalid field value")
	// ErrEntryNotFound is returned when an entry ID is not in the collection.
	ErrEntryNotFound = errors.New("entry not found")
)

// OverlapError names the existing entry a candidate collided with and how
// much of the two intervals coincide.
type OverlapError struct {
	Existing Entry
	Overlap  time.Duration
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s %s-%s %s (overlaps by %s)",
		ErrOverlapConflict, e.Existing.Date, e.Existing.Start, e.Existing.End, e.Existing.Kind,
		FormatHours(e.Overlap.Hours()))
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlapConflict
}

// MissingFieldError names the empty field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
