package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"safehours/storage"
)

func day(d int) storage.Date {
	return storage.Date{Year: 2024, Month: time.March, Day: d}
}

func hm(h, m int) storage.TimeOfDay {
	return storage.TimeOfDay(h*60 + m)
}

func rec(date storage.Date, start, end storage.TimeOfDay, kind storage.Kind) storage.Record {
	return storage.Record{Date: date, Start: start, End: end, Kind: kind}
}

func TestDailyHours(t *testing.T) {
	records := []storage.Record{
		rec(day(7), hm(8, 0), hm(10, 0), storage.KindFlight),
		{Date: day(7), Start: hm(11, 0), End: hm(12, 30), Kind: storage.KindSimATD, PrePost: 0.5},
		rec(day(7), hm(13, 0), hm(14, 0), storage.KindOther),
		rec(day(6), hm(8, 0), hm(9, 0), storage.KindFlight),
	}

	require.Equal(t, 2.0, DailyFlightHours(records, day(7)))
	require.Equal(t, 4.0, DailyContactHours(records, day(7)), "other activities are not contact time")
	require.Equal(t, 0.0, DailyFlightHours(records, day(8)))
}

func TestActivityTotals(t *testing.T) {
	records := []storage.Record{
		rec(day(1), hm(8, 0), hm(10, 0), storage.KindFlight),
		rec(day(2), hm(8, 0), hm(9, 30), storage.KindFlight),
		{Date: day(2), Start: hm(10, 0), End: hm(11, 0), Kind: storage.KindGround},
	}
	totals := ActivityTotals(records)
	require.Equal(t, map[storage.Kind]float64{
		storage.KindFlight: 3.5,
		storage.KindGround: 1,
	}, totals)
	require.Empty(t, ActivityTotals(nil))
}

func TestConsecutiveDayStreak(t *testing.T) {
	var records []storage.Record
	for d := 1; d <= 7; d++ {
		records = append(records, rec(day(d), hm(8, 0), hm(9, 0), storage.KindFlight))
	}
	require.Equal(t, 7, ConsecutiveDayStreak(records, day(7)))
	require.Equal(t, 3, ConsecutiveDayStreak(records, day(3)))
	require.Equal(t, 0, ConsecutiveDayStreak(records, day(8)), "target day without contact time")
	require.Equal(t, 0, ConsecutiveDayStreak(nil, day(7)))

	// A gap caps the streak.
	gapped := append([]storage.Record{}, records[:3]...)
	gapped = append(gapped, records[4:]...)
	require.Equal(t, 3, ConsecutiveDayStreak(gapped, day(7)))

	// One empty day right before the target caps the streak at 1.
	var broken []storage.Record
	for d := 1; d <= 5; d++ {
		broken = append(broken, rec(day(d), hm(8, 0), hm(9, 0), storage.KindFlight))
	}
	broken = append(broken, rec(day(7), hm(8, 0), hm(9, 0), storage.KindGround))
	require.Equal(t, 1, ConsecutiveDayStreak(broken, day(7)))
	require.Equal(t, 5, ConsecutiveDayStreak(broken, day(5)))

	// Other activities do not qualify a day.
	only := []storage.Record{
		rec(day(6), hm(8, 0), hm(9, 0), storage.KindFlight),
		rec(day(7), hm(8, 0), hm(9, 0), storage.KindOther),
	}
	require.Equal(t, 0, ConsecutiveDayStreak(only, day(7)))
	require.Equal(t, 1, ConsecutiveDayStreak(only, day(6)))
}

func TestConsecutiveDayStreakAcrossMonthAndYear(t *testing.T) {
	var records []storage.Record
	start := storage.Date{Year: 2023, Month: time.December, Day: 20}
	for i := 0; i < 20; i++ {
		records = append(records, rec(start.AddDays(i), hm(8, 0), hm(9, 0), storage.KindGround))
	}
	end := start.AddDays(19)
	require.Equal(t, storage.Date{Year: 2024, Month: time.January, Day: 8}, end)
	require.Equal(t, 20, ConsecutiveDayStreak(records, end))
	require.Equal(t, TierViolation, Evaluate(MetricConsecutiveDays, float64(ConsecutiveDayStreak(records, end))))
}

func TestRestGap(t *testing.T) {
	records := []storage.Record{
		rec(day(6), hm(18, 0), hm(22, 0), storage.KindFlight),
		rec(day(6), hm(9, 0), hm(10, 0), storage.KindGround),
		rec(day(7), hm(6, 0), hm(8, 0), storage.KindFlight),
		rec(day(7), hm(12, 0), hm(13, 0), storage.KindFlight),
	}
	require.Equal(t, 8.0, RestGap(records, day(7)))
	require.Equal(t, TierCaution, Evaluate(MetricRestGap, RestGap(records, day(7))))

	require.Equal(t, 0.0, RestGap(records, day(6)), "no records on the previous day")
	require.Equal(t, 0.0, RestGap(records, day(8)), "no records on the target day")

	rounded := []storage.Record{
		rec(day(6), hm(20, 0), hm(21, 40), storage.KindFlight),
		rec(day(7), hm(7, 0), hm(8, 0), storage.KindFlight),
	}
	require.Equal(t, 9.0, RestGap(rounded, day(7)), "9h20m rounds to 9")
}

func TestRestGapAcrossMonthBoundary(t *testing.T) {
	records := []storage.Record{
		rec(storage.Date{Year: 2024, Month: time.February, Day: 29}, hm(19, 0), hm(21, 0), storage.KindFlight),
		rec(storage.Date{Year: 2024, Month: time.March, Day: 1}, hm(9, 0), hm(10, 0), storage.KindFlight),
	}
	require.Equal(t, 12.0, RestGap(records, storage.Date{Year: 2024, Month: time.March, Day: 1}))
}

func TestDutySpan(t *testing.T) {
	records := []storage.Record{
		rec(day(7), hm(6, 0), hm(8, 0), storage.KindFlight),
		rec(day(7), hm(20, 0), hm(21, 20), storage.KindOther),
	}
	require.Equal(t, 15.33, DutySpan(records, day(7)))
	require.Equal(t, TierCaution, Evaluate(MetricDutySpan, DutySpan(records, day(7))))
	require.Equal(t, 0.0, DutySpan(records, day(8)))

	// Adding a record never shrinks the span.
	before := DutySpan(records, day(7))
	more := append(records, rec(day(7), hm(10, 0), hm(11, 0), storage.KindGround))
	require.GreaterOrEqual(t, DutySpan(more, day(7)), before)
	more = append(more, rec(day(7), hm(22, 0), hm(23, 30), storage.KindGround))
	require.Equal(t, 17.5, DutySpan(more, day(7)))
}

func TestRollingWeekHours(t *testing.T) {
	var records []storage.Record
	for d := 1; d <= 7; d++ {
		records = append(records,
			rec(day(d), hm(6, 0), hm(11, 0), storage.KindFlight),
			rec(day(d), hm(12, 0), hm(15, 0), storage.KindGround),
		)
	}
	total := RollingWeekHours(records, day(7))
	require.Equal(t, 56.0, total)
	require.Equal(t, TierViolation, Evaluate(MetricRollingWeek, total))

	// The window is seven days inclusive: the 1st falls out on the 8th.
	require.Equal(t, 48.0, RollingWeekHours(records, day(8)))
	require.Equal(t, 0.0, RollingWeekHours(records, day(14)))
}

func TestRollingWeekHoursIncludesPrePostAndSkipsOther(t *testing.T) {
	records := []storage.Record{
		{Date: day(5), Start: hm(8, 0), End: hm(10, 0), Kind: storage.KindFlight, PrePost: 1},
		rec(day(6), hm(8, 0), hm(18, 0), storage.KindOther),
		rec(day(7), hm(8, 0), hm(9, 0), storage.KindGround),
	}
	require.Equal(t, 4.0, RollingWeekHours(records, day(7)))
}

func TestWeeklyTimeSeries(t *testing.T) {
	records := []storage.Record{
		rec(day(7), hm(8, 0), hm(10, 0), storage.KindFlight),
		rec(day(3), hm(8, 0), hm(9, 0), storage.KindGround),
		{Date: day(5), Start: hm(8, 0), End: hm(9, 0), Kind: storage.KindFlight, PrePost: 0.5},
		rec(day(5), hm(10, 0), hm(11, 0), storage.KindOther),
		rec(storage.Date{Year: 2024, Month: time.February, Day: 29}, hm(8, 0), hm(9, 0), storage.KindFlight),
	}
	series := WeeklyTimeSeries(records, day(7))
	require.Equal(t, []DayPoint{
		{Date: day(3), FlightHours: 0, ContactHours: 1},
		{Date: day(5), FlightHours: 1, ContactHours: 1.5},
		{Date: day(7), FlightHours: 2, ContactHours: 2},
	}, series)

	require.Empty(t, WeeklyTimeSeries(records, day(20)))
}

// blocks returns n records of the given length on date from midnight, each
// followed by a gap of the same length.
func blocks(date storage.Date, n, minutes int, kind storage.Kind, prePost float64) []storage.Record {
	var out []storage.Record
	for i := 0; i < n; i++ {
		start := storage.TimeOfDay(i * 2 * minutes)
		out = append(out, storage.Record{Date: date, Start: start, End: start + storage.TimeOfDay(minutes), Kind: kind, PrePost: prePost})
	}
	return out
}

func TestTotalsOnTierBoundaries(t *testing.T) {
	// 10m + 4h10m + 1h40m is exactly 6h.
	six := []storage.Record{
		rec(day(7), hm(6, 0), hm(6, 10), storage.KindFlight),
		rec(day(7), hm(7, 0), hm(11, 10), storage.KindFlight),
		rec(day(7), hm(12, 0), hm(13, 40), storage.KindFlight),
	}
	require.Equal(t, 6.0, DailyFlightHours(six, day(7)))
	require.Equal(t, TierNormal, Evaluate(MetricFlightHours, DailyFlightHours(six, day(7))))

	eight := blocks(day(7), 24, 20, storage.KindFlight, 0)
	require.Equal(t, 8.0, DailyFlightHours(eight, day(7)))
	require.Equal(t, TierCaution, Evaluate(MetricFlightHours, DailyFlightHours(eight, day(7))))

	// Ten 54 minute sim sessions with 0.1h pre/post each.
	ten := blocks(day(7), 10, 54, storage.KindSimATD, 0.1)
	require.Equal(t, 10.0, DailyContactHours(ten, day(7)))
	require.Equal(t, TierViolation, Evaluate(MetricContactHours, DailyContactHours(ten, day(7))))

	// 150 ground blocks of 20 minutes over six days is exactly 50h.
	var fifty []storage.Record
	for d := 1; d <= 6; d++ {
		fifty = append(fifty, blocks(day(d), 25, 20, storage.KindGround, 0)...)
	}
	require.Len(t, fifty, 150)
	require.Equal(t, 50.0, RollingWeekHours(fifty, day(7)))
	require.Equal(t, TierCaution, Evaluate(MetricRollingWeek, RollingWeekHours(fifty, day(7))))

	series := WeeklyTimeSeries(fifty, day(7))
	require.Len(t, series, 6)
	require.Equal(t, 8.333333, series[0].ContactHours)
}
