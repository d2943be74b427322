package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"safehours/compliance"
)

// RenderHero renders the banner with the selected date and the worst tier
// across all metrics for that date.
func RenderHero(report compliance.Report, isToday bool, width int, heroStyle, dateStyle lipgloss.Style, tierColor func(compliance.Tier) lipgloss.Color) string {
	worst := report.Worst()
	color := tierColor(worst)

	date := report.Date.String() + "  " + report.Date.Time().Weekday().String()
	if isToday {
		date += "  (today)"
	}

	status := lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(worst.String()))
	if worst != compliance.TierNormal {
		var flagged []string
		for _, a := range report.Assessments {
			if a.Tier == worst {
				flagged = append(flagged, a.Metric.String())
			}
		}
		status += lipgloss.NewStyle().Foreground(color).Render(": " + strings.Join(flagged, ", "))
	}

	streak := report.Get(compliance.MetricConsecutiveDays).Value
	right := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(fmt.Sprintf("day %d of streak", int(streak)))

	left := dateStyle.Render(date) + "   " + status
	availableWidth := width - 4
	gap := availableWidth - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap > 1 {
		line = left + strings.Repeat(" ", gap) + right
	}

	return heroStyle.BorderForeground(color).Width(width - 2).Render(line)
}
