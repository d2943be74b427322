// Package compliance derives duty-time metrics from activity records and
// grades them against the instructor limits.
//
// Every function is a pure computation over the records it is given. Records
// are treated as an unordered set grouped by date; nothing is cached.
package compliance

import (
	"math"
	"sort"

	"safehours/storage"
)

// WindowDays is the length of the rolling contact-time window.
const WindowDays = 7

// DayPoint is one day of the weekly chart series.
type DayPoint struct {
	Date         storage.Date
	FlightHours  float64
	ContactHours float64
}

// ActivityTotals sums hours per kind across every record, regardless of
// date. Kinds with no records are absent from the map.
func ActivityTotals(records []storage.Record) map[storage.Kind]float64 {
	sums := make(map[storage.Kind]*hourSum)
	for _, r := range records {
		if sums[r.Kind] == nil {
			sums[r.Kind] = &hourSum{}
		}
		sums[r.Kind].addDuration(r)
	}
	totals := make(map[storage.Kind]float64, len(sums))
	for kind, sum := range sums {
		totals[kind] = sum.hours()
	}
	return totals
}

// DailyFlightHours sums the duration of Flight records on date.
func DailyFlightHours(records []storage.Record, date storage.Date) float64 {
	var sum hourSum
	for _, r := range records {
		if r.Date == date && r.Kind == storage.KindFlight {
			sum.addDuration(r)
		}
	}
	return sum.hours()
}

// DailyContactHours sums duration plus pre/post of every contact record on
// date. Other scheduled activities are excluded.
func DailyContactHours(records []storage.Record, date storage.Date) float64 {
	var sum hourSum
	for _, r := range records {
		if r.Date == date {
			sum.addContact(r)
		}
	}
	return sum.hours()
}

// DutySpan is the time from the earliest start to the latest end on date,
// across all kinds, rounded to two decimals. It is 0 when date has no records.
func DutySpan(records []storage.Record, date storage.Date) float64 {
	first, last, ok := bounds(records, date)
	if !ok {
		return 0
	}
	span := float64(last-first) / 60
	return math.Max(0, roundTo(span, 2))
}

// RestGap is the whole number of hours between the latest end on the previous
// calendar day and the earliest start on date. It is 0 when either day has no
// records.
func RestGap(records []storage.Record, date storage.Date) float64 {
	_, prevLatestEnd, ok := bounds(records, date.Previous())
	if !ok {
		return 0
	}
	targetEarliestStart, _, ok := bounds(records, date)
	if !ok {
		return 0
	}

	minutes := storage.MinutesPerDay - int(prevLatestEnd) + int(targetEarliestStart)
	return math.Max(0, math.Round(float64(minutes)/60))
}

// RollingWeekHours sums DailyContactHours over the seven calendar days ending
// on date, inclusive.
func RollingWeekHours(records []storage.Record, date storage.Date) float64 {
	first := date.AddDays(-(WindowDays - 1))
	var sum hourSum
	for _, r := range records {
		if inRange(r.Date, first, date) {
			sum.addContact(r)
		}
	}
	return sum.hours()
}

// ConsecutiveDayStreak counts the unbroken run of qualifying days ending on
// date. A day qualifies if it has at least one contact record. The streak is
// 0 when date itself does not qualify.
func ConsecutiveDayStreak(records []storage.Record, date storage.Date) int {
	qualifying := make(map[storage.Date]bool)
	for _, r := range records {
		if r.Kind.IsContact() {
			qualifying[r.Date] = true
		}
	}

	count := 0
	for day := date; qualifying[day]; day = day.Previous() {
		count++
	}
	return count
}

// WeeklyTimeSeries returns flight and contact hours for each date in the
// seven days ending on rangeEnd that has at least one record, ascending by
// date.
func WeeklyTimeSeries(records []storage.Record, rangeEnd storage.Date) []DayPoint {
	first := rangeEnd.AddDays(-(WindowDays - 1))
	type daySums struct{ flight, contact hourSum }
	byDate := make(map[storage.Date]*daySums)
	for _, r := range records {
		if !inRange(r.Date, first, rangeEnd) {
			continue
		}
		sums, ok := byDate[r.Date]
		if !ok {
			sums = &daySums{}
			byDate[r.Date] = sums
		}
		if r.Kind == storage.KindFlight {
			sums.flight.addDuration(r)
		}
		sums.contact.addContact(r)
	}

	series := make([]DayPoint, 0, len(byDate))
	for date, sums := range byDate {
		series = append(series, DayPoint{
			Date:         date,
			FlightHours:  sums.flight.hours(),
			ContactHours: sums.contact.hours(),
		})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// hourSum accumulates whole minutes and pre/post hours separately so that
// totals landing on a tier boundary compare exactly.
type hourSum struct {
	minutes int
	prePost float64
}

func (s *hourSum) addDuration(r storage.Record) {
	s.minutes += r.Minutes()
}

// addContact adds duration plus pre/post for contact kinds only.
func (s *hourSum) addContact(r storage.Record) {
	if !r.Kind.IsContact() {
		return
	}
	s.minutes += r.Minutes()
	s.prePost += r.PrePost
}

func (s hourSum) hours() float64 {
	return roundTo(float64(s.minutes)/60+s.prePost, 6)
}

// bounds returns the earliest start and latest end on date.
func bounds(records []storage.Record, date storage.Date) (first, last storage.TimeOfDay, ok bool) {
	for _, r := range records {
		if r.Date != date {
			continue
		}
		if !ok || r.Start < first {
			first = r.Start
		}
		if !ok || r.End > last {
			last = r.End
		}
		ok = true
	}
	return first, last, ok
}

func inRange(d, first, last storage.Date) bool {
	return !d.Before(first) && !last.Before(d)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
