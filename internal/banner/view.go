package banner

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	bannerFocusedStyle = bannerStyle.
				BorderForeground(lipgloss.Color("205"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	transitionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	dotActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dotIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	levelStyles = map[string]lipgloss.Style{
		"INFO":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		"ACTION": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		"URGENT": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// View renders the banner card: level badge, title, description, the
// decaying progress bar, and one position dot per notice. Hidden or
// empty banners render as an empty string.
func (m *Model) View() string {
	if !m.state.visible || len(m.items) == 0 {
		return ""
	}

	width := m.width
	if width < 30 {
		width = 30
	}
	inner := width - 4 // border + padding

	cur := m.items[m.state.index]

	levelStyle, ok := levelStyles[cur.Level]
	if !ok {
		levelStyle = titleStyle
	}
	header := levelStyle.Render(cur.Level) + " " + titleStyle.Render(truncate(cur.Title, inner-len(cur.Level)-1))

	desc := descStyle.Render(truncate(cur.Description, inner))
	if m.state.transitioning {
		header = transitionStyle.Render(truncate(cur.Title, inner))
		desc = transitionStyle.Render(truncate(cur.Description, inner))
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = inner
	barView := bar.ViewAs(m.state.progress / 100)

	dots := m.renderDots()

	frame := bannerStyle
	if m.state.paused {
		frame = bannerFocusedStyle
	}

	return frame.Width(width - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, desc, barView, dots),
	)
}

func (m *Model) renderDots() string {
	var b strings.Builder
	for i := range m.items {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == m.state.index {
			b.WriteString(dotActiveStyle.Render("●"))
		} else {
			b.WriteString(dotIdleStyle.Render("○"))
		}
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
