package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"safehours/compliance"
)

// RenderProgressBar renders current against limit as a filled bar.
func RenderProgressBar(current, limit float64, label, valueText string, width int, progressStyle lipgloss.Style) string {
	if limit <= 0 {
		return label + ": N/A"
	}

	percent := current / limit
	if percent > 1.0 {
		percent = 1.0
	}
	if percent < 0 {
		percent = 0
	}

	barWidth := width - 36
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(float64(barWidth) * percent)
	empty := barWidth - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	return lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Width(20).Render(label),
		progressStyle.Render(bar),
		" "+valueText,
	)
}

// RenderLimitProgress renders one bar per metric, each against its rule limit
// and coloured by tier.
func RenderLimitProgress(report compliance.Report, width int, tierStyle func(compliance.Tier) lipgloss.Style, formatHours func(float64) string) string {
	var bars []string
	for _, a := range report.Assessments {
		limit := compliance.Limit(a.Metric)

		var value string
		switch a.Metric {
		case compliance.MetricConsecutiveDays:
			value = fmt.Sprintf("%d/%dd", int(a.Value), int(limit))
		case compliance.MetricRestGap:
			if a.Value == 0 {
				value = "n/a"
			} else {
				value = fmt.Sprintf("%s (min %s)", formatHours(a.Value), formatHours(limit))
			}
		default:
			value = formatHours(a.Value) + "/" + formatHours(limit)
		}

		bars = append(bars, RenderProgressBar(a.Value, limit, a.Metric.String(), value, width, tierStyle(a.Tier)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, bars...)
}

// RenderMetricTiles renders a compact row of tiles, one per metric, each
// bordered in its tier colour.
func RenderMetricTiles(report compliance.Report, width int, tierColor func(compliance.Tier) lipgloss.Color, formatHours func(float64) string) string {
	if len(report.Assessments) == 0 {
		return ""
	}
	tileWidth := width/len(report.Assessments) - 2
	if tileWidth < 10 {
		tileWidth = 10
	}

	var tiles []string
	for _, a := range report.Assessments {
		value := formatHours(a.Value)
		if a.Metric == compliance.MetricConsecutiveDays {
			value = fmt.Sprintf("%d days", int(a.Value))
		}
		color := tierColor(a.Tier)
		tile := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Width(tileWidth).
			Align(lipgloss.Center).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(a.Metric.String()),
				lipgloss.NewStyle().Bold(true).Foreground(color).Render(value),
			))
		tiles = append(tiles, tile)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
