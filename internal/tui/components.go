package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderGavelBranding renders "Gavel" with a gold to orange gradient.
func renderGavelBranding() string {
	colors := []string{
		"#FFD700", // (G)
		"#FFC300", // (a)
		"#FFB000", // (v)
		"#FF9D00", // (e)
		"#FF8A00", // (l)
	}

	chars := []string{"G", "a", "v", "e", "l"}

	var result string
	for i, char := range chars {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i])).Bold(true)
		result += style.Render(char)
	}

	return result
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	w := m.contentWidth()
	narrow := w < 80

	// Left: current section indicator.
	var sectionName string
	switch m.activeSection {
	case SectionSidebar:
		sectionName = "Chambers"
	case SectionBanner:
		sectionName = "Alerts"
	case SectionDecks:
		if m.activeDeckIdx < len(m.decks) {
			viewTitle := m.currentViewTitle()
			if viewTitle != "" {
				sectionName = fmt.Sprintf("%s/%s", viewTitle, m.decks[m.activeDeckIdx].Title())
			} else {
				sectionName = m.decks[m.activeDeckIdx].Title()
			}
		}
	case SectionFilter:
		sectionName = "Filter"
	}

	leftText := renderGavelBranding()
	if sectionName != "" {
		leftText += baseStyle.Render(" " + sectionName)
	}

	// Middle: error or connectivity state.
	var midText string
	switch {
	case m.lastError != "" && time.Since(m.lastErrorAt) < 30*time.Second:
		errText := m.lastError
		if len(errText) > 48 {
			errText = errText[:47] + "~"
		}
		midText = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorRed).
			Render(" ! " + errText)
	case m.viewPaused:
		midText = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorGold).
			Render(" ⏸ paused")
	}

	// Right: counters and hints.
	var parts []string
	parts = append(parts, fmt.Sprintf("%d bills", m.totalBills))
	if m.statusFilter != "" {
		parts = append(parts, m.statusFilter)
	}
	if !narrow {
		parts = append(parts, m.dataSource)
		parts = append(parts, "?: help")
	}
	rightText := baseStyle.Render(" " + strings.Join(parts, " | ") + " ")

	leftWidth := lipgloss.Width(leftText) + lipgloss.Width(midText)
	rightWidth := lipgloss.Width(rightText)
	padWidth := w - leftWidth - rightWidth
	if padWidth < 0 {
		padWidth = 0
	}
	pad := baseStyle.Render(strings.Repeat(" ", padWidth))

	return leftText + midText + pad + rightText
}

// renderFilter renders the inline filter bar.
func (m *DashboardModel) renderFilter() string {
	w := m.contentWidth()

	label := "Filter"
	style := lipgloss.NewStyle().Foreground(ColorGray)
	if m.activeSection == SectionFilter {
		style = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	}

	var body string
	if m.filterActive {
		body = m.filterInput.View()
	} else {
		applied := m.searchQuery
		if applied == "" {
			applied = "(none)"
		}
		body = applied
	}

	if m.statusFilter != "" {
		body += "  " + lipgloss.NewStyle().Foreground(statusColor(m.statusFilter)).Render("["+m.statusFilter+"]")
	}

	line := style.Render(label+": ") + body
	return lipgloss.NewStyle().Width(w).MaxHeight(1).Render(line)
}
