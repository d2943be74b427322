package components

import (
	"github.com/charmbracelet/lipgloss"

	"safehours/compliance"
	"safehours/storage"
)

// RenderWeekHeatmap renders one square per day for the seven days ending on
// date, coloured by that day's contact-hour tier.
func RenderWeekHeatmap(records []storage.Record, date storage.Date, width, height int, tierColor func(compliance.Tier) lipgloss.Color, boxStyle lipgloss.Style) string {
	first := date.AddDays(-(compliance.WindowDays - 1))

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Contact Hours"))
	lines = append(lines, "")

	var columns []string
	for i := 0; i < compliance.WindowDays; i++ {
		day := first.AddDays(i)
		hours := compliance.DailyContactHours(records, day)

		color := lipgloss.Color("#333333")
		if hours > 0 {
			color = tierColor(compliance.Evaluate(compliance.MetricContactHours, hours))
		}

		square := lipgloss.NewStyle().
			Foreground(color).
			Width(4).
			Render("██")
		label := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(4).
			Render(weekdayName(day))

		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, square, label))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}

// RenderMonthHeatmap renders the last 28 days ending on date as a 4x7 grid,
// shaded by contact hours relative to the busiest day.
func RenderMonthHeatmap(records []storage.Record, date storage.Date, width, height int, boxStyle lipgloss.Style) string {
	const days = 28
	first := date.AddDays(-(days - 1))

	totals := make([]float64, days)
	var maxHours float64
	for i := range totals {
		totals[i] = compliance.DailyContactHours(records, first.AddDays(i))
		if totals[i] > maxHours {
			maxHours = totals[i]
		}
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Last 28 Days"))
	lines = append(lines, "")

	for row := 0; row < days/7; row++ {
		var squares []string
		for col := 0; col < 7; col++ {
			intensity := 0.0
			if maxHours > 0 {
				intensity = totals[row*7+col] / maxHours
			}
			squares = append(squares, lipgloss.NewStyle().
				Foreground(intensityColor(intensity)).
				Width(3).
				Render("██"))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left, squares...))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}

func intensityColor(intensity float64) lipgloss.Color {
	switch {
	case intensity == 0:
		return lipgloss.Color("#333333")
	case intensity < 0.25:
		return lipgloss.Color("#005500")
	case intensity < 0.5:
		return lipgloss.Color("#00aa00")
	case intensity < 0.75:
		return lipgloss.Color("#00ff00")
	}
	return lipgloss.Color("#88ff88")
}

func weekdayName(d storage.Date) string {
	return d.Time().Weekday().String()[:3]
}
