package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"safehours/compliance"
	"safehours/storage"
	"safehours/tui/components"
)

// renderMainView renders the main application view.
func renderMainView(m Model) string {
	width := m.width
	height := m.height
	if width < 100 {
		width = 100
	}
	if height < 30 {
		height = 30
	}

	report := m.report()
	records := m.collection.Records()

	hero := components.RenderHero(report, m.date == m.today, width, HeroStyle, HeroDateStyle, TierColor)
	tiles := components.RenderMetricTiles(report, width, TierColor, storage.FormatHoursShort)
	tabs := renderTabs(m.viewMode, width)

	usedHeight := lipgloss.Height(hero) + lipgloss.Height(tiles) + lipgloss.Height(tabs) + 3
	mainHeight := height - usedHeight
	if mainHeight < 8 {
		mainHeight = 8
	}

	leftWidth := width / 2
	rightWidth := width - leftWidth - 1

	var mainContent string
	switch m.viewMode {
	case ViewWeek:
		treeHeight := mainHeight / 2
		chartHeight := mainHeight - treeHeight
		first, last := ViewRange(ViewWeek, m.date)
		groups := GroupByKind(FilterEntriesByRange(m.collection.Entries(), first, last))
		tree := components.RenderTree(groups, leftWidth, treeHeight, TreeKindStyle, TreeEntryStyle, TreeDurationStyle, BoxStyle, KindColor, storage.FormatHoursShort)
		chart := components.RenderWeekChart(compliance.WeeklyTimeSeries(records, m.date), leftWidth, chartHeight,
			KindColor(storage.KindFlight), KindColor(storage.KindGround), BoxStyle, storage.FormatHoursShort)
		mainContent = lipgloss.JoinVertical(lipgloss.Left, tree, chart)
	case ViewMonth:
		first, last := ViewRange(ViewMonth, m.date)
		groups := GroupByKind(FilterEntriesByRange(m.collection.Entries(), first, last))
		heatHeight := 8
		heatmap := components.RenderMonthHeatmap(records, m.date, leftWidth, heatHeight, BoxStyle)
		tree := components.RenderTree(groups, leftWidth, mainHeight-heatHeight, TreeKindStyle, TreeEntryStyle, TreeDurationStyle, BoxStyle, KindColor, storage.FormatHoursShort)
		mainContent = lipgloss.JoinVertical(lipgloss.Left, heatmap, tree)
	default:
		mainContent = renderDayView(m.dayEntries(), m.selected, leftWidth, mainHeight)
	}

	// Sidebar: limits, kind chart and 7-day heatmap
	limits := BoxStyle.Width(rightWidth).Render(
		components.RenderLimitProgress(report, rightWidth-4, TierStyle, storage.FormatHoursShort))
	heatmap := components.RenderWeekHeatmap(records, m.date, rightWidth, 6, TierColor, BoxStyle)

	chartHeight := mainHeight - lipgloss.Height(limits) - lipgloss.Height(heatmap)
	if chartHeight < 4 {
		chartHeight = 4
	}
	first, last := ViewRange(m.viewMode, m.date)
	totals := CalculateKindTotals(FilterEntriesByRange(m.collection.Entries(), first, last))
	chart := components.RenderKindChart(totals, rightWidth, chartHeight, ChartBarStyle, ChartLabelStyle, ChartPercentStyle, BoxStyle, KindColor, storage.FormatHoursShort)

	sidebar := lipgloss.JoinVertical(lipgloss.Left, limits, chart, heatmap)
	contentRow := lipgloss.JoinHorizontal(lipgloss.Top, mainContent, " ", sidebar)

	var bottom string
	switch {
	case m.mode == modeAdd:
		bottom = InputStyle.Width(width - 2).Render(m.input.View())
	case m.message != "":
		style := SuccessStyle
		if m.messageError {
			style = ErrorStyle
		}
		bottom = lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Top, style.Render(m.message))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		hero,
		tiles,
		tabs,
		contentRow,
		bottom,
		renderFooter(m.mode, width),
	)
}

func renderTabs(active ViewMode, width int) string {
	names := []string{"1 Day", "2 Week", "3 Month"}
	var tabs []string
	for i, name := range names {
		style := TabInactive
		if ViewMode(i) == active {
			style = TabActive
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, tabs...))
}

// renderDayView lists the selected day's entries in start order with the
// cursor row highlighted.
func renderDayView(entries []storage.Entry, selected, width, height int) string {
	if len(entries) == 0 {
		return BoxStyle.Width(width).Height(height).Render(
			lipgloss.Place(width-4, height-2, lipgloss.Center, lipgloss.Center,
				NoteStyle.Render("No activities. Press n to add one.")))
	}

	availableWidth := width - 4
	maxLines := height - 2

	// Keep the selection visible.
	offset := 0
	if selected >= maxLines {
		offset = selected - maxLines + 1
	}

	var lines []string
	for i := offset; i < len(entries) && len(lines) < maxLines; i++ {
		e := entries[i]
		kind := lipgloss.NewStyle().Foreground(KindColor(e.Kind)).Width(18).Render(string(e.Kind))
		line := e.Start.String() + "-" + e.End.String() + "  " + kind + " " + storage.FormatHoursShort(e.DurationHours())
		if e.PrePost > 0 {
			line += " +" + storage.FormatHoursShort(e.PrePost)
		}
		if e.Note != "" {
			line += "  " + NoteStyle.Render(e.Note)
		}
		if lipgloss.Width(line) > availableWidth {
			line = lipgloss.NewStyle().MaxWidth(availableWidth).Render(line)
		}
		if i == selected {
			line = SelectedStyle.Width(availableWidth).Render(line)
		}
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return BoxStyle.Width(width).Height(height).Render(content)
}

// renderHelpView renders the key bindings and the rule text behind each
// metric.
func renderHelpView(m Model) string {
	width := m.width
	if width < 100 {
		width = 100
	}

	keys := []string{
		"←/h →/l   previous / next day      t   today",
		"↑/k ↓/j   select activity          1/2/3  day / week / month",
		"n         add activity             d   delete selected",
		"r         reload from disk         q   quit",
		"",
		"Add syntax: HH:MM HOURS KIND [PRE/POST] [note]",
		"Kinds: flight, sim, ground, other",
	}

	var rules []string
	for _, metric := range compliance.Metrics() {
		rules = append(rules,
			lipgloss.NewStyle().Bold(true).Render(metric.String()),
			lipgloss.NewStyle().Width(width-8).Render(compliance.Citation(metric)),
			"")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Keys"),
		strings.Join(keys, "\n"),
		"",
		lipgloss.NewStyle().Bold(true).Render("Rules"),
		strings.Join(rules, "\n"),
		FooterStyle.Render("press any key to return"),
	)
	return BoxStyle.Width(width - 2).Render(content)
}

// renderFooter renders the footer with help text.
func renderFooter(mode inputMode, width int) string {
	helpLine := "[←/→] Day  [↑/↓] Select  [1/2/3] Views  [n] New  [d] Delete  [r] Reload  [?] Help  [q] Quit"
	switch mode {
	case modeAdd:
		helpLine = "[enter] Save  [esc] Cancel"
	case modeConfirmDelete:
		helpLine = "[y] Delete  [any other key] Cancel"
	}
	return FooterStyle.Width(width).Render(helpLine)
}
