package tui

import "github.com/charmbracelet/lipgloss"

// Shared palette. InitializeSkin may override these from a skin file.
var (
	ColorNavy   = lipgloss.Color("17")
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("42")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
	ColorGold   = lipgloss.Color("220")
	ColorGray   = lipgloss.Color("240")
	ColorWhite  = lipgloss.Color("252")
)

// Shared styles built from the palette. Rebuilt by applySkin so skin
// overrides propagate.
var (
	sectionStyle       lipgloss.Style
	activeSectionStyle lipgloss.Style
	deckTitleStyle     lipgloss.Style
	helpStyle          lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray)

	activeSectionStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBlue)

	deckTitleStyle = lipgloss.NewStyle().
		Foreground(ColorBlue).
		Bold(true)

	helpStyle = lipgloss.NewStyle().
		Foreground(ColorGray)
}

// statusColor returns the color used for a bill status.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "ENACTED":
		return ColorGreen
	case "PASSED":
		return ColorBlue
	case "FLOOR":
		return ColorGold
	case "COMMITTEE":
		return ColorOrange
	case "VETOED", "DEAD":
		return ColorRed
	default:
		return ColorGray
	}
}

// levelColor returns the color used for a notice level.
func levelColor(level string) lipgloss.Color {
	switch level {
	case "URGENT":
		return ColorRed
	case "ACTION":
		return ColorOrange
	default:
		return ColorBlue
	}
}
