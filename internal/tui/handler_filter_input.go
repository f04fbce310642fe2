package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type filterInputHandler struct{}

func (h filterInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "escape", "esc":
		m.filterActive = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.searchQuery = ""
		if m.activeSection == SectionFilter {
			m.setActiveSection(SectionDecks)
			if m.activeDeckIdx >= len(m.decks) {
				m.activeDeckIdx = max(0, len(m.decks)-1)
			}
		}
		return true, nil
	case "enter":
		m.filterActive = false
		m.filterInput.Blur()
		m.setActiveSection(SectionDecks)
		return true, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.searchQuery = m.filterInput.Value()
		return true, cmd
	}
}

func (h filterInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil // swallow mouse events during filter input
}
