package tui

import (
	"time"

	"github.com/gavelhq/gavel/internal/banner"
	"github.com/gavelhq/gavel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type tickDataLoadedMsg struct {
	totalCount    int64
	hasTotalCount bool
	chamberList   []string
	hasChambers   bool
	notices       []model.Notice
	hasNotices    bool
	lastError     string // first store error encountered during this tick
}

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.banner.SetWidth(m.contentWidth())

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ActionMsg:
		return m.handleAction(msg)

	case banner.ActivateMsg:
		// A banner alert was activated: route to the bill it refers to.
		if msg.Notice.BillID != "" {
			return m, m.fetchBillCmd(msg.Notice.BillID)
		}
		return m, nil

	case billLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
			m.lastErrorAt = time.Now()
			return m, nil
		}
		if msg.bill != nil {
			m.PushModal(NewBillModal(m, msg.bill))
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case TickMsg:
		// Freeze refresh while manually paused so deck state stays stable.
		if m.liveUpdatesPaused() || m.tickInFlight {
			return m, tea.Tick(m.updateInterval, func(t time.Time) tea.Msg {
				return TickMsg(t)
			})
		}
		m.tickInFlight = true

		return m, tea.Batch(
			m.fetchTickDataCmd(m.billFilter()),
			tea.Tick(m.updateInterval, func(t time.Time) tea.Msg {
				return TickMsg(t)
			}),
		)

	case tickDataLoadedMsg:
		m.tickInFlight = false
		cmd := m.applyTickData(msg)
		// Visibility-aware refresh: only refresh modal data when it's visible.
		if modal := m.TopModal(); modal != nil {
			if r, ok := modal.(Refreshable); ok {
				r.Refresh()
			}
		}
		return m, cmd

	case UpdateIntervalMsg:
		m.updateInterval = time.Duration(msg)
		return m, nil

	case DeckTickMsg:
		return m.handleDeckTick(msg)

	case DeckDataMsg:
		return m.handleDeckData(msg)

	case DeckPauseMsg:
		if state, ok := m.deckStates[msg.DeckTypeID]; ok {
			state.Paused = !state.Paused
		}
		return m, nil

	case SpinnerTickMsg:
		return m.handleSpinnerTick()

	default:
		// Banner timer messages fall through here; everything else is ignored.
		if cmd := m.banner.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DashboardModel) handleAction(msg ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case ActionPushModal:
		if modal, ok := msg.Payload.(Modal); ok {
			m.PushModal(modal)
		}
	case ActionOpenBill:
		if billID, ok := msg.Payload.(string); ok && billID != "" {
			return m, m.fetchBillCmd(billID)
		}
	case ActionToggleBookmark:
		if billID, ok := msg.Payload.(string); ok && billID != "" {
			return m, m.toggleBookmarkCmd(billID)
		}
	case ActionResolveNotice:
		if noticeID, ok := msg.Payload.(string); ok && noticeID != "" {
			return m, m.resolveNoticeCmd(noticeID)
		}
	}
	return m, nil
}

// handleDeckTick fetches the deck's data and reschedules its tick.
func (m *DashboardModel) handleDeckTick(msg DeckTickMsg) (tea.Model, tea.Cmd) {
	state, ok := m.deckStates[msg.DeckTypeID]
	if !ok {
		return m, nil
	}

	reschedule := deckTickCmd(state.TypeID, state.Interval)

	if state.Paused || state.FetchInFlight || m.liveUpdatesPaused() {
		return m, reschedule
	}

	deck := m.deckByTypeID(state.TypeID)
	if deck == nil || m.store == nil {
		return m, reschedule
	}

	state.FetchInFlight = true
	return m, tea.Batch(
		deck.FetchCmd(m.store, m.billFilter()),
		reschedule,
		m.startSpinnerIfNeeded(),
	)
}

// handleDeckData applies fetched deck data and updates per-type error state.
func (m *DashboardModel) handleDeckData(msg DeckDataMsg) (tea.Model, tea.Cmd) {
	state, ok := m.deckStates[msg.DeckTypeID]
	if ok {
		state.FetchInFlight = false
		state.LastTickAt = time.Now()
		if msg.Err != nil {
			state.LastError = msg.Err.Error()
			state.LastErrorAt = time.Now()
			state.LastTickOK = false
			state.ConsecutiveErrs++
		} else {
			state.LastError = ""
			state.LastTickOK = true
			state.ConsecutiveErrs = 0
		}
	}

	m.applyDeckData(msg.DeckTypeID, msg.Data, msg.Err)
	return m, nil
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	// Inline handlers (filter input).
	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			handled, cmd := entry.handler.HandleMouse(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.handleMouseClick(msg.X, msg.Y)

		case tea.MouseButtonWheelUp:
			m.moveSelection(-1)
			return m, m.forwardScroll(-1)

		case tea.MouseButtonWheelDown:
			m.moveSelection(1)
			return m, m.forwardScroll(1)
		}
	}

	return m, nil
}

// forwardScroll accumulates wheel travel and feeds it to the banner, which
// uses the offset to decide reveal/auto-hide.
func (m *DashboardModel) forwardScroll(delta int) tea.Cmd {
	m.scrollOffset += delta * 20
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	return m.banner.Update(banner.ScrollMsg{Offset: m.scrollOffset})
}

// handleMouseClick processes mouse clicks to switch between sections
func (m *DashboardModel) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if m.width <= 0 || m.height <= 0 {
		return m, nil
	}

	if m.sidebarVisible {
		if x < sidebarWidth {
			m.setActiveSection(SectionSidebar)

			// Sidebar rows are mixed chambers + views; resolve click via rendered rows.
			if idx, ok := m.sidebarCursorAtMouseRow(y); ok {
				m.sidebarCursor = idx
				return m, m.activateSidebarCursor()
			}
			return m, nil
		}
		x -= sidebarWidth
	}

	contentWidth := m.contentWidth()

	bannerHeight, decksHeight, filterHeight := m.layoutHeights()

	if y < bannerHeight {
		// Clicking the banner focuses it, which pauses rotation (hover).
		m.setActiveSection(SectionBanner)
		return m, nil
	}
	y -= bannerHeight

	if y < decksHeight {
		if idx, ok := m.deckAt(contentWidth, decksHeight, x, y); ok {
			m.setActiveSection(SectionDecks)
			m.activeDeckIdx = idx
		}
		return m, nil
	}
	y -= decksHeight

	if filterHeight > 0 && y < filterHeight {
		m.setActiveSection(SectionFilter)
	}

	return m, nil
}

// setActiveSection switches focus, keeping the banner's hover-pause in sync.
func (m *DashboardModel) setActiveSection(s Section) {
	if m.activeSection == s {
		return
	}
	m.activeSection = s
	m.banner.SetPaused(s == SectionBanner)
}

func (m *DashboardModel) fetchTickDataCmd(f model.BillFilter) tea.Cmd {
	store := m.store
	if store == nil {
		return func() tea.Msg { return tickDataLoadedMsg{} }
	}

	return func() tea.Msg {
		msg := tickDataLoadedMsg{}

		// collectErr records the first store error encountered.
		collectErr := func(err error) {
			if err != nil && msg.lastError == "" {
				msg.lastError = err.Error()
			}
		}

		if v, err := store.TotalBillCount(f); err == nil {
			msg.totalCount = v
			msg.hasTotalCount = true
		} else {
			collectErr(err)
		}

		if chambers, err := store.ListChambers(); err == nil {
			msg.chamberList = chambers
			msg.hasChambers = true
		} else {
			collectErr(err)
		}

		if notices, err := store.ActiveNotices(12); err == nil {
			msg.notices = notices
			msg.hasNotices = true
		} else {
			collectErr(err)
		}

		return msg
	}
}

func (m *DashboardModel) applyTickData(msg tickDataLoadedMsg) tea.Cmd {
	// Surface store errors to the status line; auto-clears on a clean tick.
	if msg.lastError != "" {
		m.lastError = msg.lastError
		m.lastErrorAt = time.Now()
		m.lastTickOK = false
		m.consecutiveErrors++
	} else {
		m.lastError = ""
		m.lastTickOK = true
		m.lastTickAt = time.Now()
		m.consecutiveErrors = 0
	}

	if msg.hasTotalCount {
		m.totalBills = msg.totalCount
	}

	if msg.hasChambers {
		m.chamberList = msg.chamberList
		m.clampSidebarCursor()
	}

	var cmd tea.Cmd
	if msg.hasNotices {
		cmd = m.banner.SetItems(msg.notices)
	}
	return cmd
}

// fetchBillCmd loads one bill for the detail modal.
func (m *DashboardModel) fetchBillCmd(billID string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		bill, err := store.GetBill(billID)
		return billLoadedMsg{bill: bill, err: err}
	}
}

// toggleBookmarkCmd adds a bookmark, or removes it when already present.
func (m *DashboardModel) toggleBookmarkCmd(billID string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		bookmarks, err := store.ListBookmarks()
		if err != nil {
			return DeckDataMsg{DeckTypeID: "bookmarks", Err: err}
		}
		exists := false
		for _, b := range bookmarks {
			if b.BillID == billID {
				exists = true
				break
			}
		}
		if exists {
			err = store.RemoveBookmark(billID)
		} else {
			err = store.AddBookmark(billID, "")
		}
		if err != nil {
			return DeckDataMsg{DeckTypeID: "bookmarks", Err: err}
		}
		// Refresh the deck with the post-toggle list.
		rows, err := fetchBookmarkRows(store)
		return DeckDataMsg{DeckTypeID: "bookmarks", Data: rows, Err: err}
	}
}

// resolveNoticeCmd resolves a notice and refreshes the notices deck.
func (m *DashboardModel) resolveNoticeCmd(noticeID string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	resolver, ok := store.(model.NoticeResolver)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := resolver.ResolveNotice(noticeID); err != nil {
			return DeckDataMsg{DeckTypeID: "notices", Err: err}
		}
		notices, err := store.ActiveNotices(50)
		return DeckDataMsg{DeckTypeID: "notices", Data: notices, Err: err}
	}
}
