package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gavelhq/gavel/internal/model"
)

func testEvent(id string) *model.BillEvent {
	return &model.BillEvent{
		Bill: model.Bill{
			ID:     id,
			Number: "HB 1042",
			Title:  "Municipal broadband authority",
			Status: "COMMITTEE",
		},
		ReceivedAt: time.Now().UTC(),
		Source:     "http",
	}
}

func TestAppendCommitReplay(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ingest.journal")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	seq1, err := j.Append(testEvent("b-1"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	seq2, err := j.Append(testEvent("b-2"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if seq2 <= seq1 {
		t.Fatalf("sequence numbers not increasing: %d then %d", seq1, seq2)
	}

	if err := j.Commit(seq1); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var replayed []string
	err = j.Replay(func(_ uint64, ev *model.BillEvent) error {
		replayed = append(replayed, ev.Bill.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(replayed) != 1 || replayed[0] != "b-2" {
		t.Fatalf("replayed = %v, want only the uncommitted b-2", replayed)
	}
}

func TestReopenCompactsCommitted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ingest.journal")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	seq1, _ := j.Append(testEvent("b-1"))
	seq2, _ := j.Append(testEvent("b-2"))
	if err := j.Commit(seq1); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()

	if got := j2.Committed(); got != seq1 {
		t.Fatalf("Committed = %d after reopen, want %d", got, seq1)
	}

	var replayed []uint64
	err = j2.Replay(func(seq uint64, _ *model.BillEvent) error {
		replayed = append(replayed, seq)
		return nil
	})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(replayed) != 1 || replayed[0] != seq2 {
		t.Fatalf("replayed seqs = %v, want [%d]", replayed, seq2)
	}

	// New appends continue the sequence past what was compacted away.
	seq3, err := j2.Append(testEvent("b-3"))
	if err != nil {
		t.Fatalf("Append after reopen: %v", err)
	}
	if seq3 <= seq2 {
		t.Fatalf("seq %d after reopen, want greater than %d", seq3, seq2)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("Open with blank path succeeded, want error")
	}
}
