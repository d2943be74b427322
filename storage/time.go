package storage

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a TimeOfDay.
const MinutesPerDay = 24 * 60

var timeOfDayPattern = regexp.MustCompile(`^(?P<hour>\d{1,2}):(?P<minute>\d{2})$`)

// Date is a calendar date with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q", ErrInvalidValue, value)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays steps the date by n calendar days. The arithmetic is done on a UTC
// midnight so no daylight-saving transition can shift the result.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Previous returns the calendar day before d.
func (d Date) Previous() Date {
	return d.AddDays(-1)
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// TimeOfDay is a minute of the day in [0, MinutesPerDay).
type TimeOfDay int

// ParseTimeOfDay parses a time string in HH:MM format (24-hour).
// A single-digit hour is accepted and normalised.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	matches := timeOfDayPattern.FindStringSubmatch(value)
	if matches == nil {
		return 0, fmt.Errorf("%w: time %q", ErrInvalidValue, value)
	}

	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: time %q", ErrInvalidValue, value)
	}

	return TimeOfDay(h*60 + m), nil
}

// FormatTimeOfDay formats t as zero-padded HH:MM.
func FormatTimeOfDay(t TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) String() string {
	return FormatTimeOfDay(t)
}

// Hours returns t as fractional hours since midnight.
func (t TimeOfDay) Hours() float64 {
	return float64(t) / 60
}

// DurationHours returns end - start in hours. Intervals never wrap past
// midnight, so end must be strictly after start.
func DurationHours(start, end TimeOfDay) (float64, error) {
	if end <= start {
		return 0, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidTimeRange, end, start)
	}
	return float64(end-start) / 60, nil
}

// EndAfter derives the end time of an interval that starts at start and lasts
// the given number of hours, rounded to the minute. The end must land on the
// same calendar day.
func EndAfter(start TimeOfDay, hours float64) (TimeOfDay, error) {
	minutes := int(math.Round(hours * 60))
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: duration %.2fh must be positive", ErrInvalidTimeRange, hours)
	}
	end := int(start) + minutes
	if end >= MinutesPerDay {
		return 0, fmt.Errorf("%w: %s plus %.2fh crosses midnight", ErrInvalidTimeRange, start, hours)
	}
	return TimeOfDay(end), nil
}

// FormatHours formats fractional hours as "XhYYm", rounded to the minute.
func FormatHours(hours float64) string {
	minutes := int(math.Round(hours * 60))
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%dh%02dm", sign, minutes/60, minutes%60)
}

// FormatHoursShort is FormatHours without the minutes when they are zero.
func FormatHoursShort(hours float64) string {
	minutes := int(math.Round(hours * 60))
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return FormatHours(hours)
}
