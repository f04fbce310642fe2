package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LandingPage is a minimal splash shown before the dashboard.
// Any key press moves on.
type LandingPage struct {
	dataSource string
}

func NewLandingPage(dataSource string) *LandingPage {
	return &LandingPage{dataSource: dataSource}
}

func (p *LandingPage) ID() string { return "landing" }

func (p *LandingPage) Init() tea.Cmd { return nil }

func (p *LandingPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return tea.Quit, nil
		}
		return nil, &PageNav{PageID: "dashboard"}
	}
	return nil, nil
}

func (p *LandingPage) View(width, height int) string {
	title := renderGavelBranding()
	sub := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("Legislative tracking dashboard")
	src := lipgloss.NewStyle().
		Foreground(ColorBlue).
		Render("Data: " + p.dataSource)
	hint := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("Press any key to continue, q to quit")

	body := lipgloss.JoinVertical(lipgloss.Center, title, "", sub, src, "", hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
