package socketrpc_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gavelhq/gavel/internal/model"
	"github.com/gavelhq/gavel/internal/socketrpc"
)

// mockBackend is a minimal Backend for roundtrip testing.
type mockBackend struct{}

func (m *mockBackend) TotalBillCount(f model.BillFilter) (int64, error) { return 42, nil }
func (m *mockBackend) ListBills(limit int, f model.BillFilter) ([]model.Bill, error) {
	return []model.Bill{{
		ID:          "b1",
		Number:      "HB 1042",
		Title:       "An act concerning energy storage",
		Chamber:     "house",
		Status:      "COMMITTEE",
		Topic:       "energy",
		Sponsor:     "Rep. Ortiz",
		LastAction:  time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		ImpactScore: 70,
	}}, nil
}
func (m *mockBackend) GetBill(id string) (*model.Bill, error) {
	if id == "missing" {
		return nil, model.ErrNotFound
	}
	return &model.Bill{ID: id, Number: "HB 1042"}, nil
}
func (m *mockBackend) CountsByStatus(f model.BillFilter) ([]model.StatusCount, error) {
	return []model.StatusCount{{Status: "COMMITTEE", Count: 7}}, nil
}
func (m *mockBackend) ImpactByWeek(f model.BillFilter) ([]model.WeekImpact, error) {
	return []model.WeekImpact{{Week: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Floor: 2, Total: 2}}, nil
}
func (m *mockBackend) TopTopics(limit int) ([]model.TopicCount, error) {
	return []model.TopicCount{{Topic: "energy", Count: 3}}, nil
}
func (m *mockBackend) ListChambers() ([]string, error) { return []string{"house", "senate"}, nil }
func (m *mockBackend) ActiveNotices(limit int) ([]model.Notice, error) {
	return []model.Notice{{ID: "n1", Level: "URGENT", Title: "Floor vote moved up", BillID: "b1"}}, nil
}
func (m *mockBackend) AddBookmark(billID, note string) error { return nil }
func (m *mockBackend) RemoveBookmark(billID string) error    { return nil }
func (m *mockBackend) ListBookmarks() ([]model.Bookmark, error) {
	return []model.Bookmark{{BillID: "b1", Note: "watch the vote"}}, nil
}
func (m *mockBackend) ResolveNotice(id string) error { return nil }
func (m *mockBackend) ExecuteQuery(query string) ([]map[string]interface{}, error) {
	return []map[string]interface{}{{"ok": true}}, nil
}

func startTestServer(t *testing.T) (string, *socketrpc.Server) {
	t.Helper()
	sockPath := filepath.Join(t.TempDir(), "test.sock")
	srv := socketrpc.NewServer(sockPath, &mockBackend{})
	if err := srv.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	return sockPath, srv
}

func TestRoundtrip(t *testing.T) {
	sockPath, srv := startTestServer(t)
	defer srv.Stop()

	client, err := socketrpc.Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	filter := model.BillFilter{}

	t.Run("TotalBillCount", func(t *testing.T) {
		count, err := client.TotalBillCount(filter)
		if err != nil {
			t.Fatal(err)
		}
		if count != 42 {
			t.Fatalf("got %d, want 42", count)
		}
	})

	t.Run("ListBills", func(t *testing.T) {
		bills, err := client.ListBills(50, filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(bills) != 1 || bills[0].Number != "HB 1042" {
			t.Fatalf("unexpected bills: %v", bills)
		}
	})

	t.Run("GetBill", func(t *testing.T) {
		bill, err := client.GetBill("b1")
		if err != nil {
			t.Fatal(err)
		}
		if bill.ID != "b1" {
			t.Fatalf("got bill %q, want b1", bill.ID)
		}
	})

	t.Run("GetBill_NotFound", func(t *testing.T) {
		_, err := client.GetBill("missing")
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("CountsByStatus", func(t *testing.T) {
		counts, err := client.CountsByStatus(filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(counts) != 1 || counts[0].Count != 7 {
			t.Fatalf("unexpected counts: %v", counts)
		}
	})

	t.Run("ImpactByWeek", func(t *testing.T) {
		weeks, err := client.ImpactByWeek(filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(weeks) != 1 || weeks[0].Floor != 2 {
			t.Fatalf("unexpected weeks: %v", weeks)
		}
	})

	t.Run("TopTopics", func(t *testing.T) {
		topics, err := client.TopTopics(5)
		if err != nil {
			t.Fatal(err)
		}
		if len(topics) != 1 || topics[0].Topic != "energy" {
			t.Fatalf("unexpected topics: %v", topics)
		}
	})

	t.Run("ListChambers", func(t *testing.T) {
		chambers, err := client.ListChambers()
		if err != nil {
			t.Fatal(err)
		}
		if len(chambers) != 2 || chambers[0] != "house" {
			t.Fatalf("unexpected chambers: %v", chambers)
		}
	})

	t.Run("ActiveNotices", func(t *testing.T) {
		notices, err := client.ActiveNotices(10)
		if err != nil {
			t.Fatal(err)
		}
		if len(notices) != 1 || notices[0].Level != "URGENT" {
			t.Fatalf("unexpected notices: %v", notices)
		}
	})

	t.Run("Bookmarks", func(t *testing.T) {
		if err := client.AddBookmark("b1", "watch the vote"); err != nil {
			t.Fatal(err)
		}
		marks, err := client.ListBookmarks()
		if err != nil {
			t.Fatal(err)
		}
		if len(marks) != 1 || marks[0].BillID != "b1" {
			t.Fatalf("unexpected bookmarks: %v", marks)
		}
		if err := client.RemoveBookmark("b1"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("ResolveNotice", func(t *testing.T) {
		if err := client.ResolveNotice("n1"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("ExecuteQuery", func(t *testing.T) {
		rows, err := client.ExecuteQuery("SELECT 1")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Fatalf("unexpected rows: %v", rows)
		}
	})
}

func TestDialFailure(t *testing.T) {
	_, err := socketrpc.Dial(filepath.Join(t.TempDir(), "nonexistent.sock"))
	if err == nil {
		t.Fatal("expected error dialing nonexistent socket")
	}
}

func TestServerStopCleansSocket(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "cleanup.sock")
	srv := socketrpc.NewServer(sockPath, &mockBackend{})
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	srv.Stop()

	// Socket file should be removed.
	if _, err := socketrpc.Dial(sockPath); err == nil {
		t.Fatal("expected dial to fail after server stop")
	}
}

func TestStopIdempotent(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "idempotent.sock")
	srv := socketrpc.NewServer(sockPath, &mockBackend{})
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	srv.Stop()
	srv.Stop()
}

func TestStopClosesConns(t *testing.T) {
	sockPath, srv := startTestServer(t)
	client, err := socketrpc.Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	srv.Stop()

	done := make(chan error, 1)
	go func() {
		_, callErr := client.ListChambers()
		done <- callErr
	}()

	select {
	case callErr := <-done:
		if callErr == nil {
			t.Fatal("expected client call to fail after server stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client call hung after server stop")
	}
}
