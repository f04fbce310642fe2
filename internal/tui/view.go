package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *DashboardModel) contentWidth() int {
	if m.sidebarVisible {
		w := m.width - sidebarWidth
		if w < 40 {
			w = 40
		}
		return w
	}
	return m.width
}

// layoutHeights computes the vertical layout sections so renderDashboard and
// mouse hit-testing share a single source of truth.
func (m *DashboardModel) layoutHeights() (bannerHeight, decksHeight, filterHeight int) {
	statusLineHeight := 1
	usableHeight := m.height - statusLineHeight - 2

	bannerHeight = 0
	if bannerView := m.banner.View(); bannerView != "" {
		bannerHeight = lipgloss.Height(bannerView)
	}

	filterHeight = 0
	if m.hasFilter() {
		filterHeight = 1
	}

	decksHeight = usableHeight - bannerHeight - filterHeight
	if decksHeight < 4 {
		decksHeight = 4
	}
	return bannerHeight, decksHeight, filterHeight
}

// hasFilter returns true if a filter is active or applied.
func (m *DashboardModel) hasFilter() bool {
	return m.filterActive || m.searchQuery != "" ||
		m.filterInput.Value() != "" || m.statusFilter != ""
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < 20 || m.width < 60 {
		return "Terminal too small. Resize to at least 60x20."
	}

	contentWidth := m.contentWidth()
	showSidebar := m.sidebarVisible

	m.banner.SetWidth(contentWidth)

	bannerHeight, decksHeight, _ := m.layoutHeights()

	var sections []string

	// Alert banner above the deck grid.
	if bannerHeight > 0 {
		sections = append(sections, m.banner.View())
	}

	// Decks grid.
	if len(m.decks) > 0 && decksHeight > 0 {
		sections = append(sections, m.renderDecksGrid(contentWidth, decksHeight))
	} else if decksHeight > 0 {
		sections = append(sections, renderEmptyViewPlaceholder(m.currentViewTitle(), contentWidth, decksHeight))
	}

	// Filter bar (shown when a filter is active or applied).
	if m.hasFilter() {
		sections = append(sections, m.renderFilter())
	}

	mainContent := lipgloss.JoinVertical(lipgloss.Left, sections...)

	statusLine := m.renderStatusLine()

	contentArea := lipgloss.JoinVertical(
		lipgloss.Left,
		mainContent,
		statusLine,
	)

	var result string
	if showSidebar {
		sidebar := m.renderSidebar(m.height - 2)
		result = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, contentArea)
	} else {
		result = contentArea
	}

	return m.viewStyle.Render(result)
}

// renderEmptyViewPlaceholder renders a centered placeholder for views with no decks.
func renderEmptyViewPlaceholder(title string, width, height int) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("7")).
		Render(title)

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render("Nothing to show")

	block := lipgloss.JoinVertical(lipgloss.Center, heading, subtitle)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
