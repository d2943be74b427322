package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"safehours/compliance"
	"safehours/storage"
)

// KindChartItem is one bar of the kind chart.
type KindChartItem struct {
	Kind    storage.Kind
	Hours   float64
	Percent float64
}

// KindChartItems orders totals by hours, descending, with each bar scaled to
// the largest total.
func KindChartItems(totals map[storage.Kind]float64) []KindChartItem {
	var items []KindChartItem
	var maxHours float64
	for kind, hours := range totals {
		items = append(items, KindChartItem{Kind: kind, Hours: hours})
		if hours > maxHours {
			maxHours = hours
		}
	}

	for i := range items {
		if maxHours > 0 {
			items[i].Percent = items[i].Hours / maxHours
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Hours != items[j].Hours {
			return items[i].Hours > items[j].Hours
		}
		return items[i].Kind < items[j].Kind
	})
	return items
}

// RenderKindChart renders a horizontal bar chart of hours per activity kind.
func RenderKindChart(totals map[storage.Kind]float64, width, height int, chartBarStyle, chartLabelStyle, chartPercentStyle, boxStyle lipgloss.Style, kindColor func(storage.Kind) lipgloss.Color, formatHours func(float64) string) string {
	if len(totals) == 0 {
		return boxStyle.Width(width).Height(height).Render(
			lipgloss.Place(width-4, height-2, lipgloss.Center, lipgloss.Center,
				lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No activities logged.")))
	}

	items := KindChartItems(totals)

	maxLines := height - 2
	if maxLines < 1 {
		maxLines = 1
	}
	if len(items) > maxLines {
		items = items[:maxLines]
	}

	barWidth := width - 32
	if barWidth < 4 {
		barWidth = 4
	}

	var lines []string
	for _, item := range items {
		filled := int(float64(barWidth) * item.Percent)
		if filled < 0 {
			filled = 0
		}
		if filled > barWidth {
			filled = barWidth
		}

		label := chartLabelStyle.Foreground(kindColor(item.Kind)).Render(string(item.Kind))
		bar := chartBarStyle.Foreground(kindColor(item.Kind)).Render(strings.Repeat("█", filled))
		hours := chartPercentStyle.Render(formatHours(item.Hours))

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left, label, bar, hours))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}

// RenderWeekChart renders paired flight and contact bars for each day of the
// weekly series, scaled to the contact-hour daily limit.
func RenderWeekChart(series []compliance.DayPoint, width, height int, flightColor, contactColor lipgloss.Color, boxStyle lipgloss.Style, formatHours func(float64) string) string {
	title := lipgloss.NewStyle().Bold(true).Render("Last 7 Days")
	if len(series) == 0 {
		return boxStyle.Width(width).Height(height).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "",
				lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No activities this week.")))
	}

	const scale = 10.0
	barWidth := width - 26
	if barWidth < 4 {
		barWidth = 4
	}
	bar := func(hours float64, color lipgloss.Color) string {
		n := int(float64(barWidth) * hours / scale)
		if n > barWidth {
			n = barWidth
		}
		if n < 0 {
			n = 0
		}
		return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
	}

	lines := []string{title, ""}
	for _, p := range series {
		day := p.Date.String()[5:]
		lines = append(lines,
			fmt.Sprintf("%s F %-7s %s", day, formatHours(p.FlightHours), bar(p.FlightHours, flightColor)),
			fmt.Sprintf("%s C %-7s %s", strings.Repeat(" ", len(day)), formatHours(p.ContactHours), bar(p.ContactHours, contactColor)),
		)
	}

	maxLines := height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}
