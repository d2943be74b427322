package tui

import (
	"github.com/charmbracelet/lipgloss"

	"safehours/compliance"
	"safehours/storage"
)

var (
	colorNormal    = lipgloss.Color("#04B575")
	colorCaution   = lipgloss.Color("#FFB000")
	colorViolation = lipgloss.Color("#FF4672")
	colorMuted     = lipgloss.Color("#888888")
	colorBorder    = lipgloss.Color("#444444")
	colorAccent    = lipgloss.Color("#7D56F4")

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	HeroStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 1)

	HeroDateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))

	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A3A3A"))
	NoteStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	TreeKindStyle     = lipgloss.NewStyle().Bold(true)
	TreeEntryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	TreeDurationStyle = lipgloss.NewStyle().Foreground(colorMuted)

	ChartBarStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	ChartLabelStyle   = lipgloss.NewStyle().Width(18)
	ChartPercentStyle = lipgloss.NewStyle().Foreground(colorMuted).PaddingLeft(1)

	FooterStyle  = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorNormal).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorViolation).Bold(true)
	InputStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorAccent).Padding(0, 1)
)

var kindColors = map[storage.Kind]lipgloss.Color{
	storage.KindFlight: lipgloss.Color("#5FAFFF"),
	storage.KindSimATD: lipgloss.Color("#AF87FF"),
	storage.KindGround: lipgloss.Color("#87D787"),
	storage.KindOther:  lipgloss.Color("#BCBCBC"),
}

// KindColor returns the display colour of an activity kind.
func KindColor(kind storage.Kind) lipgloss.Color {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return colorMuted
}

// TierColor returns the display colour of a tier.
func TierColor(tier compliance.Tier) lipgloss.Color {
	switch tier {
	case compliance.TierViolation:
		return colorViolation
	case compliance.TierCaution:
		return colorCaution
	}
	return colorNormal
}

// TierStyle is a bold foreground style in the tier's colour.
func TierStyle(tier compliance.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(TierColor(tier))
}

