package tui

import (
	"testing"
	"time"
)

func TestNewDashboardModel_DefaultViews(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")

	if got := len(m.views); got != 3 {
		t.Fatalf("view count = %d, want 3", got)
	}
	if m.activeViewIdx != 0 {
		t.Fatalf("active view = %d, want 0", m.activeViewIdx)
	}
	if got := m.currentViewTitle(); got != "Overview" {
		t.Fatalf("active view title = %q, want Overview", got)
	}
	if got := len(m.decks); got != 4 {
		t.Fatalf("overview deck count = %d, want 4", got)
	}
}

func TestViewSwitch_PreservesDeckSelection(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")

	m.activeDeckIdx = 2
	m.deckSelIdx[2] = 5

	m.nextView()
	if got := m.currentViewTitle(); got != "Bills" {
		t.Fatalf("view after next = %q, want Bills", got)
	}

	m.prevView()
	if got := m.currentViewTitle(); got != "Overview" {
		t.Fatalf("view after prev = %q, want Overview", got)
	}
	if m.activeDeckIdx != 2 {
		t.Fatalf("active deck = %d, want restored 2", m.activeDeckIdx)
	}
	if got := m.deckSelIdx[2]; got != 5 {
		t.Fatalf("deck selection = %d, want restored 5", got)
	}
}

func TestRegisterDeckTicks_OneStatePerType(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")

	cmds := m.registerDeckTicks()
	if len(cmds) == 0 {
		t.Fatal("expected deck tick commands for tickable decks")
	}

	for _, tid := range []string{"impact", "status", "topics", "notices", "bills", "bookmarks"} {
		if _, ok := m.deckStates[tid]; !ok {
			t.Fatalf("missing deck state for type %q", tid)
		}
	}
	if got := len(m.deckStates); got != 6 {
		t.Fatalf("deck state count = %d, want 6", got)
	}
}

func TestSidebarActivation_SelectsChamber(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")
	m.chamberList = []string{"house", "senate"}

	// Cursor 0 is "All"; cursor 1 is the first real chamber.
	m.sidebarCursor = 1
	cmd := m.activateSidebarCursor()

	if m.selectedChamber != "house" {
		t.Fatalf("selected chamber = %q, want house", m.selectedChamber)
	}
	if cmd == nil {
		t.Fatal("expected refresh commands after chamber change")
	}
	if got := m.billFilter().Chamber; got != "house" {
		t.Fatalf("filter chamber = %q, want house", got)
	}
}

func TestSidebarActivation_SelectsView(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")
	m.chamberList = []string{"house"}

	// Items: All, house, then the three views.
	m.sidebarCursor = 3
	m.activateSidebarCursor()

	if got := m.currentViewTitle(); got != "Bills" {
		t.Fatalf("active view = %q, want Bills", got)
	}
}

func TestStatusFilterCycle_WrapsToAll(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")

	m.cycleStatusFilter()
	if m.statusFilter != "INTRODUCED" {
		t.Fatalf("first cycle = %q, want INTRODUCED", m.statusFilter)
	}

	for i := 0; i < len(statusCycle)-1; i++ {
		m.cycleStatusFilter()
	}
	if m.statusFilter != "" {
		t.Fatalf("full cycle = %q, want empty (all)", m.statusFilter)
	}
}
