package components

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"safehours/compliance"
	"safehours/storage"
)

const (
	timelineBarRow    = 4
	timelineBarHeight = 2
	timelineEmpty     = '·'
	timelineFilled    = '█'
)

var timelineColors = map[storage.Kind]tcell.Color{
	storage.KindFlight: tcell.GetColor("#5fafff"),
	storage.KindSimATD: tcell.GetColor("#af87ff"),
	storage.KindGround: tcell.GetColor("#87d787"),
	storage.KindOther:  tcell.GetColor("#bcbcbc"),
}

// TimelineColor returns the timeline colour of an activity kind.
func TimelineColor(kind storage.Kind) tcell.Color {
	if c, ok := timelineColors[kind]; ok {
		return c
	}
	return tcell.ColorGray
}

// TimelineBarRow is the first screen row of the 24-hour bar.
func TimelineBarRow() int {
	return timelineBarRow
}

// TimelineKindAt returns the kind of the record covering column col when a
// day is spread across cols columns.
func TimelineKindAt(records []storage.Record, date storage.Date, col, cols int) (storage.Kind, bool) {
	if cols <= 0 || col < 0 || col >= cols {
		return "", false
	}
	from := storage.TimeOfDay(col * storage.MinutesPerDay / cols)
	to := storage.TimeOfDay((col + 1) * storage.MinutesPerDay / cols)
	for _, r := range records {
		if r.Date == date && storage.Overlaps(r.Start, r.End, from, to) {
			return r.Kind, true
		}
	}
	return "", false
}

// DrawTimeline draws a 24-hour bar of date across the full screen width, an
// hour ruler above it and a per-kind legend below it.
func DrawTimeline(s tcell.Screen, records []storage.Record, date storage.Date) {
	s.Clear()
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}

	plain := tcell.StyleDefault
	bold := plain.Bold(true)
	dim := plain.Foreground(tcell.ColorGray)

	drawText(s, 0, 0, bold, fmt.Sprintf("Timeline %s %s", date, date.Time().Weekday()))

	report := compliance.BuildReport(records, date)
	summary := fmt.Sprintf("duty %s  contact %s  flight %s",
		storage.FormatHours(report.Get(compliance.MetricDutySpan).Value),
		storage.FormatHours(report.Get(compliance.MetricContactHours).Value),
		storage.FormatHours(report.Get(compliance.MetricFlightHours).Value),
	)
	drawText(s, 0, 1, dim, summary)

	for hour := 0; hour < 24; hour += 3 {
		x := hour * width / 24
		drawText(s, x, timelineBarRow-1, dim, fmt.Sprintf("%02d", hour))
	}

	for col := 0; col < width; col++ {
		ch, style := timelineEmpty, dim
		if kind, ok := TimelineKindAt(records, date, col, width); ok {
			ch, style = timelineFilled, plain.Foreground(TimelineColor(kind))
		}
		for row := 0; row < timelineBarHeight; row++ {
			s.SetContent(col, timelineBarRow+row, ch, nil, style)
		}
	}

	totals := compliance.ActivityTotals(onDate(records, date))
	row := timelineBarRow + timelineBarHeight + 1
	for _, kind := range storage.Kinds() {
		s.SetContent(0, row, timelineFilled, nil, plain.Foreground(TimelineColor(kind)))
		drawText(s, 2, row, plain, fmt.Sprintf("%-18s %s", kind, storage.FormatHours(totals[kind])))
		row++
	}

	drawText(s, 0, height-1, dim, "←/→ change day   q quit")
	s.Show()
}

func onDate(records []storage.Record, date storage.Date) []storage.Record {
	var day []storage.Record
	for _, r := range records {
		if r.Date == date {
			day = append(day, r)
		}
	}
	return day
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	width, _ := s.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
