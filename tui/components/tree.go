package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"safehours/storage"
)

// KindGroup is the entries of one activity kind within a date range.
type KindGroup struct {
	Kind    storage.Kind
	Hours   float64
	Entries []storage.Entry
}

// RenderTree renders a two-level view: each kind with its total, then its
// entries.
func RenderTree(groups []KindGroup, width, height int, treeKindStyle, treeEntryStyle, treeDurationStyle, boxStyle lipgloss.Style, kindColor func(storage.Kind) lipgloss.Color, formatHours func(float64) string) string {
	if len(groups) == 0 {
		return boxStyle.Width(width).Height(height).Render(
			lipgloss.Place(width-4, height-2, lipgloss.Center, lipgloss.Center,
				lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No entries in this period.")))
	}

	inner := width - 4
	var lines []string
	maxLines := height - 2

	for _, group := range groups {
		if len(lines) >= maxLines {
			break
		}

		total := formatHours(group.Hours)
		kindLine := "> " + treeKindStyle.Foreground(kindColor(group.Kind)).Render(string(group.Kind))
		dots := strings.Repeat(".", max(0, inner-lipgloss.Width(kindLine)-len(total)-2))
		lines = append(lines, kindLine+" "+dots+" "+treeDurationStyle.Render(total))

		for _, e := range group.Entries {
			if len(lines) >= maxLines {
				break
			}

			hours := formatHours(e.DurationHours())
			entryLine := "  - " + e.Date.String()[5:] + " " + e.Start.String() + "-" + e.End.String()
			if e.Note != "" {
				entryLine += " " + e.Note
			}
			room := inner - len(hours) - 2
			if lipgloss.Width(entryLine) > room {
				entryLine = truncate(entryLine, room)
			}
			entryLine = treeEntryStyle.Render(entryLine)
			dots := strings.Repeat(".", max(0, inner-lipgloss.Width(entryLine)-len(hours)-2))
			lines = append(lines, entryLine+" "+dots+" "+treeDurationStyle.Render(hours))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
