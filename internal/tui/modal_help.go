package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal displays the help documentation.
type HelpModal struct {
	viewport   viewport.Model
	renderView func(vp *viewport.Model, width, height int) string
}

func NewHelpModal(m *DashboardModel) *HelpModal {
	return &HelpModal{
		viewport: viewport.New(80, 20),
		renderView: func(vp *viewport.Model, width, height int) string {
			return m.renderSingleModalView(vp, "Help & Documentation", helpModalContent(), width, height)
		},
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		case "?", "h", "escape", "esc":
			return true, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				h.viewport.ScrollUp(1)
				return false, nil
			case tea.MouseButtonWheelDown:
				h.viewport.ScrollDown(1)
				return false, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return h.renderView(&h.viewport, width, height)
}

// helpModalContent returns the help modal content without positioning
func helpModalContent() string {
	helpContent := `Gavel Dashboard Help

NAVIGATION:
  Tab/Shift+Tab  - Navigate between sections
  Mouse Click    - Click on any section to switch to it
  up/down or k/j - Move selection within section
  Mouse Wheel    - Scroll up/down to navigate selections
  Enter          - Show details for selected item
  Escape         - Close modal/clear filters

ALERT BANNER:
  Alerts rotate automatically every few seconds. Focusing
  the banner (Tab or click) pauses rotation.
  left/right     - Previous/next alert (restarts the cycle)
  Enter          - Open the bill behind the current alert
  x              - Resolve the current alert
  Scrolling the dashboard hides the banner; it returns
  once scrolling settles back at the top.

ACTIONS:
  /              - Filter bills (number, title, sponsor)
  c              - Cycle status filter
  a              - Toggle chamber sidebar
  [ / ]          - Switch view (Overview/Bills/Bookmarks)
  b              - Bookmark/unbookmark the selected bill
  x              - Resolve the selected alert
  Space          - Pause/unpause live updates
  p              - Pause/unpause the focused deck
  u/U            - Cycle update intervals (forward/backward)
  ? or h         - Toggle this help
  q/Ctrl+C       - Quit

SECTIONS:
  Chambers (left) - Chamber filtering and view navigation
  Alerts          - Rotating alert banner
  Activity        - Weekly bill activity chart
  Pipeline        - Bill counts by status
  Topics          - Most active topics
  Bills           - Browse and inspect tracked bills
  Bookmarks       - Bills you pinned

FILTER:
  Filter (/): Type to match bill number, title, or sponsor.
  Status (c): Cycle INTRODUCED -> ... -> DEAD -> all.
  Chamber: pick from the sidebar ('a' to show it).

`

	return lipgloss.NewStyle().
		Width(65).
		Render(helpContent)
}
