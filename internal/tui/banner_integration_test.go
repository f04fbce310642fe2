package tui

import (
	"testing"
	"time"

	"github.com/gavelhq/gavel/internal/banner"
	"github.com/gavelhq/gavel/internal/model"
)

func TestTickData_FeedsBanner(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")

	notices := []model.Notice{
		{ID: "n1", Level: "URGENT", Title: "Floor vote moved up", BillID: "b1"},
		{ID: "n2", Level: "ACTION", Title: "Amendment filed"},
	}

	_, cmd := m.Update(tickDataLoadedMsg{notices: notices, hasNotices: true})

	if got := m.banner.Len(); got != 2 {
		t.Fatalf("banner item count = %d, want 2", got)
	}
	if cmd == nil {
		t.Fatal("expected banner restart command after items changed")
	}
}

func TestBannerFocus_PausesRotation(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")
	m.banner.SetItems([]model.Notice{{ID: "n1", Level: "INFO", Title: "hearing set"}})

	m.setActiveSection(SectionBanner)
	if !m.banner.Paused() {
		t.Fatal("banner should pause while focused")
	}

	m.setActiveSection(SectionDecks)
	if m.banner.Paused() {
		t.Fatal("banner should resume when focus leaves it")
	}
}

func TestBannerActivate_OpensBillModal(t *testing.T) {
	t.Parallel()

	store := &countingStore{
		bills: []model.Bill{{ID: "b1", Number: "HB 1", Title: "Water rights", Status: "FLOOR"}},
	}
	m := NewDashboardModel(time.Second, store, "Test")

	_, cmd := m.Update(banner.ActivateMsg{
		Index:  0,
		Notice: model.Notice{ID: "n1", Title: "Floor vote", BillID: "b1"},
	})
	if cmd == nil {
		t.Fatal("expected a bill fetch command from banner activation")
	}

	m.Update(cmd())
	top := m.TopModal()
	if top == nil {
		t.Fatal("expected bill modal after fetch completes")
	}
	if got := top.ID(); got != "bill:b1" {
		t.Fatalf("modal ID = %q, want bill:b1", got)
	}
}

func TestScroll_ForwardsOffsetToBanner(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")
	m.banner.SetItems([]model.Notice{{ID: "n1", Level: "INFO", Title: "hearing set"}})

	cmd := m.forwardScroll(1)
	if m.scrollOffset <= 0 {
		t.Fatalf("scroll offset = %d, want > 0 after wheel down", m.scrollOffset)
	}
	if cmd == nil {
		t.Fatal("expected an idle-debounce command from the banner")
	}
	// Hiding is debounced; the banner stays visible until scrolling settles.
	if !m.banner.Visible() {
		t.Fatal("banner should stay visible until the idle debounce fires")
	}

	m.forwardScroll(-1)
	if m.scrollOffset != 0 {
		t.Fatalf("scroll offset = %d, want clamped to 0", m.scrollOffset)
	}
}
