package duckdb

import (
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/gavelhq/gavel/internal/journal"
	"github.com/gavelhq/gavel/internal/model"
)

func testEvent(id string) *model.BillEvent {
	return &model.BillEvent{
		Bill:   testBill(id, "HB "+id, "house", "INTRODUCED", "energy", 40),
		Source: "http",
	}
}

func TestIngestBuffer_AddAndStop(t *testing.T) {
	store := newTestStore(t)
	buf := NewIngestBuffer(store)

	for i := 0; i < 10; i++ {
		buf.Add(testEvent(string(rune('a' + i))))
	}

	// Stop should flush all pending events.
	buf.Stop()

	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != 10 {
		t.Errorf("after Stop, TotalBillCount = %d, want 10", count)
	}
}

func TestIngestBuffer_BatchThreshold(t *testing.T) {
	store := newTestStore(t)
	buf := NewIngestBuffer(store, IngestBufferConfig{BatchSize: 50})

	// More events than the batch size forces immediate flushes.
	for i := 0; i < 120; i++ {
		buf.Add(testEvent("bill-" + strconv.Itoa(i)))
	}

	buf.Stop()

	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != 120 {
		t.Errorf("after batch insert, TotalBillCount = %d, want 120", count)
	}
}

func TestIngestBuffer_ConcurrentAdd(t *testing.T) {
	store := newTestStore(t)
	buf := NewIngestBuffer(store)

	var wg sync.WaitGroup
	numGoroutines := 8
	eventsPerGoroutine := 25

	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < eventsPerGoroutine; i++ {
				ev := testEvent("x")
				ev.Bill.ID = "g" + strconv.Itoa(g) + "-" + strconv.Itoa(i)
				buf.Add(ev)
			}
		}(g)
	}

	wg.Wait()
	buf.Stop()

	expected := int64(numGoroutines * eventsPerGoroutine)
	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != expected {
		t.Errorf("concurrent insert TotalBillCount = %d, want %d", count, expected)
	}
}

func TestIngestBuffer_StopIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	buf := NewIngestBuffer(store)

	buf.Add(testEvent("b1"))

	buf.Stop()
	buf.Stop()

	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		t.Fatalf("TotalBillCount: %v", err)
	}
	if count != 1 {
		t.Errorf("after double Stop, TotalBillCount = %d, want 1", count)
	}
}

func TestIngestBuffer_JournalCommittedOnStop(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(t.TempDir(), "events.journal")
	jnl, err := journal.Open(path)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}

	buf := NewIngestBuffer(store, IngestBufferConfig{Journal: jnl})
	for i := 0; i < 5; i++ {
		ev := testEvent("x")
		ev.Bill.ID = "j" + strconv.Itoa(i)
		buf.Add(ev)
	}
	buf.Stop()

	// After a clean stop everything is committed, so reopening compacts
	// the journal down to nothing.
	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("journal.Open (reopen): %v", err)
	}
	defer reopened.Close()

	var replayed int
	err = reopened.Replay(func(seq uint64, event *model.BillEvent) error {
		replayed++
		return nil
	})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed != 0 {
		t.Errorf("replayed %d uncommitted events after clean stop, want 0", replayed)
	}
}

