package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 22

type sidebarItemKind int

const (
	sidebarItemView sidebarItemKind = iota
	sidebarItemChamber
)

type sidebarItem struct {
	kind    sidebarItemKind
	viewIdx int
	chamber string // empty means "All"
}

func (m *DashboardModel) sidebarItems() []sidebarItem {
	items := make([]sidebarItem, 0, len(m.views)+len(m.chamberList)+1)

	items = append(items, sidebarItem{kind: sidebarItemChamber, chamber: ""})
	for _, ch := range m.chamberList {
		items = append(items, sidebarItem{
			kind:    sidebarItemChamber,
			chamber: ch,
		})
	}

	for i := range m.views {
		items = append(items, sidebarItem{
			kind:    sidebarItemView,
			viewIdx: i,
		})
	}

	return items
}

func (m *DashboardModel) clampSidebarCursor() {
	items := m.sidebarItems()
	if len(items) == 0 {
		m.sidebarCursor = 0
		return
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = 0
	}
	if m.sidebarCursor >= len(items) {
		m.sidebarCursor = len(items) - 1
	}
}

func (m *DashboardModel) moveSidebarCursor(delta int) tea.Cmd {
	items := m.sidebarItems()
	if len(items) == 0 {
		return nil
	}
	m.sidebarCursor += delta
	m.clampSidebarCursor()
	return m.applySidebarItem(items[m.sidebarCursor])
}

func (m *DashboardModel) activateSidebarCursor() tea.Cmd {
	items := m.sidebarItems()
	if len(items) == 0 {
		return nil
	}
	m.clampSidebarCursor()
	return m.applySidebarItem(items[m.sidebarCursor])
}

func (m *DashboardModel) applySidebarItem(item sidebarItem) tea.Cmd {
	switch item.kind {
	case sidebarItemView:
		m.activateView(item.viewIdx)
		return nil
	case sidebarItemChamber:
		prev := m.selectedChamber
		m.selectedChamber = item.chamber
		if prev == item.chamber {
			return nil
		}
		// Immediately refresh the core tick and deck data for the new chamber.
		var cmds []tea.Cmd

		m.tickInFlight = false
		f := m.billFilter()
		cmds = append(cmds, m.fetchTickDataCmd(f))

		for tid, state := range m.deckStates {
			if state.FetchInFlight {
				continue
			}
			if deck := m.deckByTypeID(tid); deck != nil && m.store != nil {
				state.FetchInFlight = true
				cmds = append(cmds, deck.FetchCmd(m.store, f))
			}
		}

		return tea.Batch(cmds...)
	}
	return nil
}

func (m *DashboardModel) buildSidebarLines() ([]string, map[int]int) {
	rowToCursor := make(map[int]int)
	lines := make([]string, 0, len(m.views)+len(m.chamberList)+8)

	appendLine := func(line string) {
		lines = append(lines, line)
	}

	cursor := 0

	appendLine(lipgloss.NewStyle().Bold(true).Render("Chambers"))
	appendLine("")

	chamberLabel := func(ch string) string {
		if ch == "" {
			return "All"
		}
		return ch
	}

	for _, ch := range append([]string{""}, m.chamberList...) {
		label := fmt.Sprintf("  %s", chamberLabel(ch))
		if m.selectedChamber == ch {
			label = fmt.Sprintf("> %s", chamberLabel(ch))
		}

		maxLabelWidth := sidebarWidth - 4
		if len(label) > maxLabelWidth && maxLabelWidth > 3 {
			label = label[:maxLabelWidth-1] + "~"
		}

		rowToCursor[len(lines)] = cursor
		if m.activeSection == SectionSidebar && m.sidebarCursor == cursor {
			label = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(label)
		}
		appendLine(label)
		cursor++
	}

	appendLine("")
	appendLine(lipgloss.NewStyle().Bold(true).Render("Views"))
	appendLine("")

	for i, vw := range m.views {
		label := fmt.Sprintf("  %s", vw.Title)
		if m.activeViewIdx == i {
			label = fmt.Sprintf("> %s", vw.Title)
		}
		rowToCursor[len(lines)] = cursor
		if m.activeSection == SectionSidebar && m.sidebarCursor == cursor {
			label = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(label)
		}
		appendLine(label)
		cursor++
	}

	return lines, rowToCursor
}

func (m *DashboardModel) sidebarCursorAtMouseRow(y int) (int, bool) {
	_, rowToCursor := m.buildSidebarLines()

	// Bubble Tea mouse row can include border/padding rows depending on renderer.
	for _, offset := range []int{0, -1, -2, 1} {
		row := y + offset
		if row < 0 {
			continue
		}
		if idx, ok := rowToCursor[row]; ok {
			return idx, true
		}
	}
	return 0, false
}

// renderSidebar renders chamber/view navigation in the left sidebar.
func (m *DashboardModel) renderSidebar(height int) string {
	m.clampSidebarCursor()

	style := lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)

	if m.activeSection == SectionSidebar {
		style = style.BorderForeground(ColorBlue)
	}

	lines, _ := m.buildSidebarLines()
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return style.Render(content)
}
