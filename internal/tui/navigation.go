package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// inlineHandlerEntry pairs an activation predicate with its key/mouse handler.
type inlineHandlerEntry struct {
	isActive func(*DashboardModel) bool
	handler  inlineHandler
}

type inlineHandler interface {
	HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd)
	HandleMouse(m *DashboardModel, msg tea.MouseMsg) (bool, tea.Cmd)
}

// handleKeyPress dispatches key events: modal stack first, then inline
// handlers (filter input), then global dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
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
			handled, cmd := entry.handler.HandleKey(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts.
// Only reached when no modal is on the stack and no inline handler is active.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Escape):
		// Clear applied filters even when not in input mode.
		if m.searchQuery != "" || m.filterInput.Value() != "" || m.statusFilter != "" {
			m.filterActive = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.searchQuery = ""
			m.statusFilter = ""
			if m.activeSection == SectionFilter {
				m.setActiveSection(SectionDecks)
				if m.activeDeckIdx >= len(m.decks) {
					m.activeDeckIdx = max(0, len(m.decks)-1)
				}
			}
			return m, nil
		}

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m))
		return m, nil

	case key.Matches(msg, k.Filter):
		m.setActiveSection(SectionFilter)
		m.filterActive = true
		m.filterInput.SetValue(m.searchQuery)
		m.filterInput.Focus()
		return m, nil

	case key.Matches(msg, k.CycleStatus):
		m.cycleStatusFilter()
		return m, nil

	case key.Matches(msg, k.ToggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
		if m.sidebarVisible && m.activeSection != SectionSidebar {
			if m.store != nil {
				if chambers, err := m.store.ListChambers(); err == nil {
					m.chamberList = chambers
				}
			}
			m.clampSidebarCursor()
		}
		return m, nil

	case key.Matches(msg, k.NextView):
		m.nextView()
		return m, nil

	case key.Matches(msg, k.PrevView):
		m.prevView()
		return m, nil

	case key.Matches(msg, k.Bookmark):
		if billID := m.selectedBillID(); billID != "" {
			return m, m.toggleBookmarkCmd(billID)
		}
		return m, nil

	case key.Matches(msg, k.Resolve):
		if m.activeSection == SectionBanner {
			if cur := m.banner.Current(); cur != nil {
				return m, m.resolveNoticeCmd(cur.ID)
			}
			return m, nil
		}
		if noticeID := m.selectedNoticeID(); noticeID != "" {
			return m, m.resolveNoticeCmd(noticeID)
		}
		return m, nil

	case key.Matches(msg, k.DeckPause):
		// Per-deck pause: toggle pause on focused deck's TypeID
		if m.activeSection == SectionDecks && m.activeDeckIdx < len(m.decks) {
			if tp, ok := m.decks[m.activeDeckIdx].(TickableDeck); ok {
				tid := tp.TypeID()
				if state, exists := m.deckStates[tid]; exists {
					state.Paused = !state.Paused
				}
			}
		}
		return m, nil

	case key.Matches(msg, k.Pause):
		m.viewPaused = !m.viewPaused
		return m, nil

	case key.Matches(msg, k.IntervalUp):
		return m.cycleInterval(1)

	case key.Matches(msg, k.IntervalDown):
		return m.cycleInterval(-1)
	}

	// Sidebar navigation
	if m.activeSection == SectionSidebar && m.sidebarVisible {
		switch {
		case key.Matches(msg, k.Up):
			return m, m.moveSidebarCursor(-1)
		case key.Matches(msg, k.Down):
			return m, m.moveSidebarCursor(1)
		case key.Matches(msg, k.Enter):
			return m, m.activateSidebarCursor()
		}
	}

	// Banner navigation: left/right step alerts, enter activates.
	if m.activeSection == SectionBanner {
		switch {
		case key.Matches(msg, k.Left):
			return m, m.banner.Prev()
		case key.Matches(msg, k.Right):
			return m, m.banner.Next()
		case key.Matches(msg, k.Enter):
			return m, m.banner.Activate()
		}
	}

	// Navigation shortcuts
	switch {
	case key.Matches(msg, k.NextSection):
		m.nextSection()
		return m, nil

	case key.Matches(msg, k.PrevSection):
		m.prevSection()
		return m, nil

	case key.Matches(msg, k.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, k.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, k.Enter):
		return m.showDetails()
	}

	return m, nil
}

// cycleStatusFilter advances the status filter through statusCycle.
func (m *DashboardModel) cycleStatusFilter() {
	cur := 0
	for i, s := range statusCycle {
		if s == m.statusFilter {
			cur = i
			break
		}
	}
	m.statusFilter = statusCycle[(cur+1)%len(statusCycle)]
}

func (m *DashboardModel) cycleInterval(dir int) (tea.Model, tea.Cmd) {
	n := len(m.availableIntervals)
	m.currentIntervalIdx = (m.currentIntervalIdx + dir + n) % n
	newInterval := m.availableIntervals[m.currentIntervalIdx]
	m.updateInterval = newInterval
	return m, func() tea.Msg { return UpdateIntervalMsg(newInterval) }
}

// nextSection moves to the next section: sidebar → banner → decks → sidebar.
func (m *DashboardModel) nextSection() {
	switch m.activeSection {
	case SectionSidebar:
		m.setActiveSection(SectionBanner)

	case SectionBanner, SectionFilter:
		if len(m.decks) == 0 {
			m.wrapToSidebarOrBanner()
			return
		}
		m.setActiveSection(SectionDecks)
		if m.activeDeckIdx >= len(m.decks) {
			m.activeDeckIdx = max(0, len(m.decks)-1)
		}

	case SectionDecks:
		if m.activeDeckIdx < len(m.decks)-1 {
			m.activeDeckIdx++
			return
		}
		m.wrapToSidebarOrBanner()
	}
}

func (m *DashboardModel) wrapToSidebarOrBanner() {
	if m.sidebarVisible {
		m.setActiveSection(SectionSidebar)
	} else {
		m.setActiveSection(SectionBanner)
	}
}

// prevSection moves to the previous section.
func (m *DashboardModel) prevSection() {
	switch m.activeSection {
	case SectionSidebar:
		if len(m.decks) > 0 {
			m.setActiveSection(SectionDecks)
			m.activeDeckIdx = len(m.decks) - 1
		} else {
			m.setActiveSection(SectionBanner)
		}

	case SectionBanner:
		if m.sidebarVisible {
			m.setActiveSection(SectionSidebar)
		} else if len(m.decks) > 0 {
			m.setActiveSection(SectionDecks)
			m.activeDeckIdx = len(m.decks) - 1
		}

	case SectionDecks, SectionFilter:
		if m.activeSection == SectionDecks && m.activeDeckIdx > 0 {
			m.activeDeckIdx--
			return
		}
		m.setActiveSection(SectionBanner)
	}
}

// moveSelection moves the selection within the active deck.
func (m *DashboardModel) moveSelection(delta int) {
	if m.activeSection != SectionDecks || m.activeDeckIdx >= len(m.decks) {
		return
	}

	maxItems := m.decks[m.activeDeckIdx].ItemCount()
	if maxItems == 0 {
		return
	}

	current := m.deckSelIdx[m.activeDeckIdx]
	newIndex := current + delta
	if newIndex < 0 {
		newIndex = 0
	} else if newIndex >= maxItems {
		newIndex = maxItems - 1
	}
	m.deckSelIdx[m.activeDeckIdx] = newIndex
}

// selectedBillID returns the bill ID under the cursor in the focused deck.
func (m *DashboardModel) selectedBillID() string {
	if m.activeSection != SectionDecks || m.activeDeckIdx >= len(m.decks) {
		return ""
	}
	if d, ok := m.decks[m.activeDeckIdx].(interface{ BillIDAt(int) string }); ok {
		return d.BillIDAt(m.deckSelIdx[m.activeDeckIdx])
	}
	return ""
}

// selectedNoticeID returns the notice ID under the cursor in the focused deck.
func (m *DashboardModel) selectedNoticeID() string {
	if m.activeSection != SectionDecks || m.activeDeckIdx >= len(m.decks) {
		return ""
	}
	if d, ok := m.decks[m.activeDeckIdx].(interface{ NoticeIDAt(int) string }); ok {
		return d.NoticeIDAt(m.deckSelIdx[m.activeDeckIdx])
	}
	return ""
}

// showDetails shows details for the selected item
func (m *DashboardModel) showDetails() (tea.Model, tea.Cmd) {
	if m.activeSection == SectionDecks && m.activeDeckIdx < len(m.decks) {
		cmd := m.decks[m.activeDeckIdx].OnSelect(m.viewContext(), m.deckSelIdx[m.activeDeckIdx])
		return m, cmd
	}
	return m, nil
}
