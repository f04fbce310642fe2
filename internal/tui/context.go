package tui

import tea "github.com/charmbracelet/bubbletea"

// ViewContext provides read-only context to decks for rendering,
// replacing direct access to *DashboardModel.
type ViewContext struct {
	ContentWidth    int
	ContentHeight   int
	SearchTerm      string
	SelectedChamber string
	StatusFilter    string
	DeckPaused      bool   // per-deck pause state (set per render)
	DeckLastError   string // per-deck last error (set per render)
	DeckLoading     bool   // true when deck's data fetch is in-flight
}

// Action identifies what a deck wants the dashboard to do.
type Action int

const (
	ActionPushModal Action = iota
	ActionOpenBill         // payload is a bill ID to fetch and show
	ActionToggleBookmark   // payload is a bill ID
	ActionResolveNotice    // payload is a notice ID
)

// ActionMsg is returned by deck OnSelect to communicate with the dashboard
// without mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// actionMsg wraps ActionMsg as a tea.Msg.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}
