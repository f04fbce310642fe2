package duckdb

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gavelhq/gavel/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testBill(id, number, chamber, status, topic string, impact int) model.Bill {
	return model.Bill{
		ID:          id,
		Number:      number,
		Title:       "An act concerning " + topic,
		Chamber:     chamber,
		Status:      status,
		Topic:       topic,
		Sponsor:     "Rep. Ortiz",
		Introduced:  time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		LastAction:  time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		ActionText:  "Referred to committee",
		ImpactScore: impact,
	}
}

func upsertTestBills(t *testing.T, store *Store, bills ...model.Bill) {
	t.Helper()
	events := make([]*model.BillEvent, 0, len(bills))
	for _, b := range bills {
		events = append(events, &model.BillEvent{Bill: b, ReceivedAt: time.Now(), Source: "seed"})
	}
	if err := store.UpsertBillBatch(events); err != nil {
		t.Fatalf("UpsertBillBatch failed: %v", err)
	}
}

func TestUpsertBillBatch(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store,
		testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40),
		testBill("b2", "SB 0201", "senate", "COMMITTEE", "health", 70),
		testBill("b3", "HB 1100", "house", "FLOOR", "education", 55),
	)

	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != 3 {
		t.Errorf("TotalBillCount = %d, want 3", count)
	}
}

func TestUpsertBillBatch_LaterEventWins(t *testing.T) {
	store := newTestStore(t)

	first := testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40)
	second := first
	second.Status = "COMMITTEE"
	second.ActionText = "Passed out of committee"

	upsertTestBills(t, store, first, second)

	got, err := store.GetBill("b1")
	if err != nil {
		t.Fatalf("GetBill: %v", err)
	}
	if got.Status != "COMMITTEE" {
		t.Errorf("Status after upsert = %q, want %q", got.Status, "COMMITTEE")
	}
	if got.ActionText != "Passed out of committee" {
		t.Errorf("ActionText after upsert = %q, want %q", got.ActionText, "Passed out of committee")
	}

	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != 1 {
		t.Errorf("TotalBillCount = %d, want 1", count)
	}
}

func TestGetBill_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetBill("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBill(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListBills_Filters(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store,
		testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40),
		testBill("b2", "SB 0201", "senate", "COMMITTEE", "health", 70),
		testBill("b3", "HB 1100", "house", "COMMITTEE", "energy", 55),
	)

	house, err := store.ListBills(50, model.BillFilter{Chamber: "house"})
	if err != nil {
		t.Fatalf("ListBills(house): %v", err)
	}
	if len(house) != 2 {
		t.Errorf("house bills = %d, want 2", len(house))
	}

	committee, err := store.ListBills(50, model.BillFilter{Status: "COMMITTEE"})
	if err != nil {
		t.Fatalf("ListBills(COMMITTEE): %v", err)
	}
	if len(committee) != 2 {
		t.Errorf("committee bills = %d, want 2", len(committee))
	}

	both, err := store.ListBills(50, model.BillFilter{Chamber: "house", Status: "COMMITTEE"})
	if err != nil {
		t.Fatalf("ListBills(house+COMMITTEE): %v", err)
	}
	if len(both) != 1 || both[0].ID != "b3" {
		t.Errorf("house committee bills = %+v, want single b3", both)
	}
}

func TestListBills_Search(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store,
		testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40),
		testBill("b2", "SB 0201", "senate", "COMMITTEE", "health", 70),
	)

	got, err := store.ListBills(50, model.BillFilter{Search: "1042"})
	if err != nil {
		t.Fatalf("ListBills(search): %v", err)
	}
	if len(got) != 1 || got[0].ID != "b1" {
		t.Errorf("search 1042 = %+v, want single b1", got)
	}

	got, err = store.ListBills(50, model.BillFilter{Search: "ortiz"})
	if err != nil {
		t.Fatalf("ListBills(sponsor search): %v", err)
	}
	if len(got) != 2 {
		t.Errorf("sponsor search matches = %d, want 2 (case-insensitive)", len(got))
	}
}

func TestCountsByStatus(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store,
		testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40),
		testBill("b2", "SB 0201", "senate", "INTRODUCED", "health", 70),
		testBill("b3", "HB 1100", "house", "FLOOR", "education", 55),
	)

	counts, err := store.CountsByStatus(model.BillFilter{})
	if err != nil {
		t.Fatalf("CountsByStatus: %v", err)
	}

	byStatus := make(map[string]int64)
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	if byStatus["INTRODUCED"] != 2 {
		t.Errorf("INTRODUCED count = %d, want 2", byStatus["INTRODUCED"])
	}
	if byStatus["FLOOR"] != 1 {
		t.Errorf("FLOOR count = %d, want 1", byStatus["FLOOR"])
	}
}

func TestTopTopics(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store,
		testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40),
		testBill("b2", "SB 0201", "senate", "COMMITTEE", "energy", 70),
		testBill("b3", "HB 1100", "house", "FLOOR", "education", 55),
	)

	topics, err := store.TopTopics(5)
	if err != nil {
		t.Fatalf("TopTopics: %v", err)
	}
	if len(topics) == 0 {
		t.Fatal("TopTopics returned no results")
	}
	if topics[0].Topic != "energy" {
		t.Errorf("top topic = %q, want %q", topics[0].Topic, "energy")
	}
	if topics[0].Count != 2 {
		t.Errorf("top topic count = %d, want 2", topics[0].Count)
	}
}

func TestListChambers(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store,
		testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40),
		testBill("b2", "SB 0201", "senate", "COMMITTEE", "health", 70),
	)

	chambers, err := store.ListChambers()
	if err != nil {
		t.Fatalf("ListChambers: %v", err)
	}
	if len(chambers) != 2 {
		t.Fatalf("ListChambers = %v, want 2 chambers", chambers)
	}
}

func TestActiveNotices_OrderAndResolution(t *testing.T) {
	store := newTestStore(t)

	now := time.Now().UTC()
	notices := []*model.Notice{
		{ID: "n1", Level: "INFO", Title: "Session schedule updated", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "n2", Level: "URGENT", Title: "Floor vote moved up", BillID: "b1", CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "n3", Level: "ACTION", Title: "Comment deadline approaching", CreatedAt: now.Add(-2 * time.Hour)},
	}
	if err := store.InsertNoticeBatch(notices); err != nil {
		t.Fatalf("InsertNoticeBatch: %v", err)
	}

	active, err := store.ActiveNotices(10)
	if err != nil {
		t.Fatalf("ActiveNotices: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("ActiveNotices = %d, want 3", len(active))
	}
	if active[0].ID != "n2" {
		t.Errorf("first active notice = %q, want URGENT n2", active[0].ID)
	}
	if active[1].ID != "n3" {
		t.Errorf("second active notice = %q, want ACTION n3", active[1].ID)
	}

	if err := store.ResolveNotice("n2"); err != nil {
		t.Fatalf("ResolveNotice: %v", err)
	}
	active, err = store.ActiveNotices(10)
	if err != nil {
		t.Fatalf("ActiveNotices after resolve: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active notices after resolve = %d, want 2", len(active))
	}
	for _, n := range active {
		if n.ID == "n2" {
			t.Error("resolved notice n2 still listed as active")
		}
	}
}

func TestInsertNoticeBatch_DuplicateIDIgnored(t *testing.T) {
	store := newTestStore(t)

	n := &model.Notice{ID: "n1", Level: "INFO", Title: "once", CreatedAt: time.Now().UTC()}
	if err := store.InsertNoticeBatch([]*model.Notice{n}); err != nil {
		t.Fatalf("InsertNoticeBatch: %v", err)
	}
	if err := store.InsertNoticeBatch([]*model.Notice{n}); err != nil {
		t.Fatalf("InsertNoticeBatch (dup): %v", err)
	}

	active, err := store.ActiveNotices(10)
	if err != nil {
		t.Fatalf("ActiveNotices: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("active notices = %d, want 1 after duplicate insert", len(active))
	}
}

func TestBookmarks(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store, testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40))

	if err := store.AddBookmark("b1", "watch the committee vote"); err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	// Re-adding updates the note rather than erroring.
	if err := store.AddBookmark("b1", "vote moved to Friday"); err != nil {
		t.Fatalf("AddBookmark (update): %v", err)
	}

	list, err := store.ListBookmarks()
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListBookmarks = %d entries, want 1", len(list))
	}
	if list[0].Note != "vote moved to Friday" {
		t.Errorf("bookmark note = %q, want updated note", list[0].Note)
	}

	if err := store.RemoveBookmark("b1"); err != nil {
		t.Fatalf("RemoveBookmark: %v", err)
	}
	if err := store.RemoveBookmark("b1"); err != nil {
		t.Fatalf("RemoveBookmark (absent): %v", err)
	}

	list, err = store.ListBookmarks()
	if err != nil {
		t.Fatalf("ListBookmarks after remove: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListBookmarks after remove = %d entries, want 0", len(list))
	}
}

func TestTotalBillCount_Empty(t *testing.T) {
	store := newTestStore(t)

	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != 0 {
		t.Errorf("empty store TotalBillCount = %d, want 0", count)
	}
}

func TestExecuteQuery_SelectAllowed(t *testing.T) {
	store := newTestStore(t)

	upsertTestBills(t, store, testBill("b1", "HB 1042", "house", "INTRODUCED", "energy", 40))

	results, err := store.ExecuteQuery("SELECT COUNT(*) as cnt FROM bills")
	if err != nil {
		t.Fatalf("ExecuteQuery SELECT: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("ExecuteQuery returned %d rows, want 1", len(results))
	}
}

func TestExecuteQuery_DMLRejected(t *testing.T) {
	store := newTestStore(t)

	rejected := []string{
		"INSERT INTO bills (id) VALUES ('hack')",
		"UPDATE bills SET title = 'hacked'",
		"DELETE FROM bills",
		"DROP TABLE bills",
		"SELECT * FROM bills; DROP TABLE bills",
	}

	for _, sql := range rejected {
		_, err := store.ExecuteQuery(sql)
		if err == nil {
			t.Errorf("ExecuteQuery(%q) should have been rejected", sql)
		}
	}
}

func TestExecuteQuery_KeywordInCommentRejected(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ExecuteQuery("SELECT /* sneaky */ COPY(bills, '/tmp/x.csv') FROM bills")
	if err == nil {
		t.Fatal("ExecuteQuery should reject COPY keyword")
	}
	if !strings.Contains(err.Error(), "COPY") {
		t.Errorf("error %q should mention the rejected keyword", err.Error())
	}
}

func TestTableRowCounts(t *testing.T) {
	store := newTestStore(t)

	counts, err := store.TableRowCounts()
	if err != nil {
		t.Fatalf("TableRowCounts: %v", err)
	}
	for _, table := range []string{"bills", "notices", "bookmarks"} {
		if _, ok := counts[table]; !ok {
			t.Errorf("TableRowCounts missing table %q", table)
		}
	}
}
