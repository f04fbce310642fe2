package tui

import (
	"testing"
	"time"

	"github.com/gavelhq/gavel/internal/model"
)

type countingStore struct {
	totalCount int64
	chambers   []string
	notices    []model.Notice
	bills      []model.Bill
	bookmarks  []model.Bookmark

	totalBillCountCalls int
	listBillsCalls      int
	getBillCalls        int
	countsByStatusCalls int
	impactByWeekCalls   int
	topTopicsCalls      int
	listChambersCalls   int
	activeNoticesCalls  int
	addBookmarkCalls    int
	removeBookmarkCalls int
	listBookmarksCalls  int
	resolveNoticeCalls  int

	resolvedNoticeIDs []string
}

func (s *countingStore) TotalBillCount(_ model.BillFilter) (int64, error) {
	s.totalBillCountCalls++
	return s.totalCount, nil
}

func (s *countingStore) ListBills(_ int, _ model.BillFilter) ([]model.Bill, error) {
	s.listBillsCalls++
	return s.bills, nil
}

func (s *countingStore) GetBill(id string) (*model.Bill, error) {
	s.getBillCalls++
	for i := range s.bills {
		if s.bills[i].ID == id {
			return &s.bills[i], nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *countingStore) CountsByStatus(_ model.BillFilter) ([]model.StatusCount, error) {
	s.countsByStatusCalls++
	return []model.StatusCount{}, nil
}

func (s *countingStore) ImpactByWeek(_ model.BillFilter) ([]model.WeekImpact, error) {
	s.impactByWeekCalls++
	return []model.WeekImpact{}, nil
}

func (s *countingStore) TopTopics(_ int) ([]model.TopicCount, error) {
	s.topTopicsCalls++
	return []model.TopicCount{}, nil
}

func (s *countingStore) ListChambers() ([]string, error) {
	s.listChambersCalls++
	return s.chambers, nil
}

func (s *countingStore) ActiveNotices(_ int) ([]model.Notice, error) {
	s.activeNoticesCalls++
	return s.notices, nil
}

func (s *countingStore) AddBookmark(billID, note string) error {
	s.addBookmarkCalls++
	s.bookmarks = append(s.bookmarks, model.Bookmark{BillID: billID, Note: note, CreatedAt: time.Now()})
	return nil
}

func (s *countingStore) RemoveBookmark(billID string) error {
	s.removeBookmarkCalls++
	kept := s.bookmarks[:0]
	for _, b := range s.bookmarks {
		if b.BillID != billID {
			kept = append(kept, b)
		}
	}
	s.bookmarks = kept
	return nil
}

func (s *countingStore) ListBookmarks() ([]model.Bookmark, error) {
	s.listBookmarksCalls++
	return append([]model.Bookmark(nil), s.bookmarks...), nil
}

func (s *countingStore) ResolveNotice(id string) error {
	s.resolveNoticeCalls++
	s.resolvedNoticeIDs = append(s.resolvedNoticeIDs, id)
	kept := s.notices[:0]
	for _, n := range s.notices {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notices = kept
	return nil
}

func TestTick_ManualPauseSkipsRefresh(t *testing.T) {
	t.Parallel()

	store := &countingStore{totalCount: 3}

	m := NewDashboardModel(time.Second, store, "Test")
	m.viewPaused = true

	m.Update(TickMsg(time.Now()))

	if store.totalBillCountCalls != 0 {
		t.Fatalf("total bill count calls = %d, want 0 while manually paused", store.totalBillCountCalls)
	}
	if m.tickInFlight {
		t.Fatal("tick fetch should not start while manually paused")
	}
}

func TestTick_RefreshAppliesData(t *testing.T) {
	t.Parallel()

	store := &countingStore{
		totalCount: 42,
		chambers:   []string{"house", "senate"},
	}

	m := NewDashboardModel(time.Second, store, "Test")

	m.Update(TickMsg(time.Now()))
	if !m.tickInFlight {
		t.Fatal("expected async tick fetch to be in-flight")
	}

	msg := m.fetchTickDataCmd(m.billFilter())()
	m.Update(msg)

	if store.totalBillCountCalls == 0 {
		t.Fatal("expected bill count query during refresh, got none")
	}
	if m.totalBills != 42 {
		t.Fatalf("totalBills = %d, want 42", m.totalBills)
	}
	if got := len(m.chamberList); got != 2 {
		t.Fatalf("chamber list length = %d, want 2", got)
	}
	if m.tickInFlight {
		t.Fatal("tick fetch should be cleared after data arrives")
	}
}

func TestTick_SkipsWhileFetchInFlight(t *testing.T) {
	t.Parallel()

	store := &countingStore{totalCount: 1}

	m := NewDashboardModel(time.Second, store, "Test")
	m.tickInFlight = true

	m.Update(TickMsg(time.Now()))

	if store.totalBillCountCalls != 0 {
		t.Fatalf("total bill count calls = %d, want 0 while a fetch is in flight", store.totalBillCountCalls)
	}
}

func TestTickData_ErrorSurfacesAndClears(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(time.Second, &countingStore{}, "Test")

	m.Update(tickDataLoadedMsg{lastError: "store gone"})
	if m.lastError != "store gone" {
		t.Fatalf("lastError = %q, want %q", m.lastError, "store gone")
	}
	if m.lastTickOK {
		t.Fatal("lastTickOK should be false after an error tick")
	}

	m.Update(tickDataLoadedMsg{hasTotalCount: true, totalCount: 7})
	if m.lastError != "" {
		t.Fatalf("lastError = %q, want cleared after a clean tick", m.lastError)
	}
	if !m.lastTickOK {
		t.Fatal("lastTickOK should be true after a clean tick")
	}
}

func TestBookmarkToggle_AddsThenRemoves(t *testing.T) {
	t.Parallel()

	store := &countingStore{
		bills: []model.Bill{{ID: "b1", Number: "HB 1", Title: "Test bill", Status: "FLOOR"}},
	}

	m := NewDashboardModel(time.Second, store, "Test")

	msg := m.toggleBookmarkCmd("b1")()
	data, ok := msg.(DeckDataMsg)
	if !ok {
		t.Fatalf("toggle returned %T, want DeckDataMsg", msg)
	}
	if data.DeckTypeID != "bookmarks" {
		t.Fatalf("deck type = %q, want bookmarks", data.DeckTypeID)
	}
	if store.addBookmarkCalls != 1 {
		t.Fatalf("add calls = %d, want 1", store.addBookmarkCalls)
	}
	if got := len(store.bookmarks); got != 1 {
		t.Fatalf("bookmark count = %d, want 1 after first toggle", got)
	}

	m.toggleBookmarkCmd("b1")()
	if store.removeBookmarkCalls != 1 {
		t.Fatalf("remove calls = %d, want 1", store.removeBookmarkCalls)
	}
	if got := len(store.bookmarks); got != 0 {
		t.Fatalf("bookmark count = %d, want 0 after second toggle", got)
	}
}

func TestResolveNotice_RemovesAndRefreshes(t *testing.T) {
	t.Parallel()

	store := &countingStore{
		notices: []model.Notice{
			{ID: "n1", Level: "URGENT", Title: "Floor vote moved up"},
			{ID: "n2", Level: "INFO", Title: "New committee report"},
		},
	}

	m := NewDashboardModel(time.Second, store, "Test")

	msg := m.resolveNoticeCmd("n1")()
	data, ok := msg.(DeckDataMsg)
	if !ok {
		t.Fatalf("resolve returned %T, want DeckDataMsg", msg)
	}
	if data.DeckTypeID != "notices" {
		t.Fatalf("deck type = %q, want notices", data.DeckTypeID)
	}
	if len(store.resolvedNoticeIDs) != 1 || store.resolvedNoticeIDs[0] != "n1" {
		t.Fatalf("resolved IDs = %v, want [n1]", store.resolvedNoticeIDs)
	}

	notices, ok := data.Data.([]model.Notice)
	if !ok {
		t.Fatalf("resolve data = %T, want []model.Notice", data.Data)
	}
	if len(notices) != 1 || notices[0].ID != "n2" {
		t.Fatalf("remaining notices = %+v, want only n2", notices)
	}
}
