package duckdb

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gavelhq/gavel/internal/journal"
	"github.com/gavelhq/gavel/internal/model"
)

// DefaultFlushQueueSize is the number of batches that can be queued for
// async flushing.
const DefaultFlushQueueSize = 16

type journaledEvent struct {
	seq   uint64
	event *model.BillEvent
}

type durableJournal interface {
	Append(event *model.BillEvent) (uint64, error)
	Commit(seq uint64) error
	Close() error
}

// IngestBuffer batches bill events and flushes them to DuckDB
// asynchronously. Add never blocks on database IO.
type IngestBuffer struct {
	writer        model.BillWriter
	mu            sync.Mutex
	pending       []journaledEvent
	flushChan     chan []journaledEvent
	maxBatch      int
	flushInterval time.Duration
	done          chan struct{}
	wg            sync.WaitGroup
	tickWg        sync.WaitGroup // separate WaitGroup for tickLoop
	stopOnce      sync.Once
	journal       durableJournal
}

// IngestBufferConfig holds tunable parameters for the ingest buffer.
type IngestBufferConfig struct {
	BatchSize      int
	FlushInterval  time.Duration
	FlushQueueSize int
	Journal        *journal.Journal
}

// NewIngestBuffer creates an ingest buffer that flushes to the writer.
func NewIngestBuffer(writer model.BillWriter, conf ...IngestBufferConfig) *IngestBuffer {
	batchSize := 500
	flushInterval := 250 * time.Millisecond
	flushQueueSize := DefaultFlushQueueSize
	if len(conf) > 0 {
		if conf[0].BatchSize > 0 {
			batchSize = conf[0].BatchSize
		}
		if conf[0].FlushInterval > 0 {
			flushInterval = conf[0].FlushInterval
		}
		if conf[0].FlushQueueSize > 0 {
			flushQueueSize = conf[0].FlushQueueSize
		}
	}

	b := &IngestBuffer{
		writer:        writer,
		pending:       make([]journaledEvent, 0, batchSize),
		flushChan:     make(chan []journaledEvent, flushQueueSize),
		maxBatch:      batchSize,
		flushInterval: flushInterval,
		done:          make(chan struct{}),
	}
	if len(conf) > 0 && conf[0].Journal != nil {
		b.journal = conf[0].Journal
	}

	b.wg.Add(1)
	go b.flushWorker()

	b.wg.Add(1)
	b.tickWg.Add(1)
	go b.tickLoop()

	return b
}

// tickLoop periodically drains the pending buffer.
func (b *IngestBuffer) tickLoop() {
	defer b.wg.Done()
	defer b.tickWg.Done()
	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.drainPending()
		case <-b.done:
			b.drainPending() // final drain
			return
		}
	}
}

// drainPending moves pending events to the flush channel without
// blocking on the database. A full channel falls back to an inline
// flush so sustained overload cannot grow memory without bound.
func (b *IngestBuffer) drainPending() {
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.pending
	b.pending = make([]journaledEvent, 0, b.maxBatch)
	b.mu.Unlock()

	select {
	case b.flushChan <- batch:
	default:
		if err := b.flushBatch(batch); err != nil {
			log.Printf("duckdb flush error (inline): %v", err)
		}
	}
}

// flushWorker processes batches from the flush channel.
func (b *IngestBuffer) flushWorker() {
	defer b.wg.Done()
	for batch := range b.flushChan {
		if err := b.flushBatch(batch); err != nil {
			log.Printf("duckdb flush error: %v", err)
		}
	}
}

// Add queues a bill event for batch insertion. When a journal is
// configured the event is journaled before it is acknowledged.
func (b *IngestBuffer) Add(event *model.BillEvent) {
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC()
	}

	seq := uint64(0)
	if b.journal != nil {
		for {
			var err error
			seq, err = b.journal.Append(event)
			if err == nil {
				break
			}
			log.Printf("duckdb: journal append failed, retrying: %v", err)
			select {
			case <-b.done:
				return
			case <-time.After(200 * time.Millisecond):
			}
		}
	}

	b.mu.Lock()
	b.pending = append(b.pending, journaledEvent{seq: seq, event: event})
	var batch []journaledEvent
	if len(b.pending) >= b.maxBatch {
		batch = b.pending
		b.pending = make([]journaledEvent, 0, b.maxBatch)
	}
	b.mu.Unlock()

	if batch != nil {
		select {
		case b.flushChan <- batch:
		default:
			if err := b.flushBatch(batch); err != nil {
				log.Printf("duckdb flush error (overflow-inline): %v", err)
			}
		}
	}
}

// Stop flushes remaining events and waits for all writes to complete.
func (b *IngestBuffer) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		// Wait for tickLoop's final drain before closing flushChan so no
		// pending event is dropped.
		b.tickWg.Wait()
		close(b.flushChan)
		b.wg.Wait()
		if b.journal != nil {
			if err := b.journal.Close(); err != nil {
				log.Printf("duckdb: journal close error: %v", err)
			}
		}
	})
}

func (b *IngestBuffer) flushBatch(batch []journaledEvent) error {
	if len(batch) == 0 {
		return nil
	}

	events := make([]*model.BillEvent, 0, len(batch))
	for _, item := range batch {
		events = append(events, item.event)
	}

	if err := b.writer.UpsertBillBatch(events); err != nil {
		return err
	}

	if b.journal != nil {
		maxSeq := uint64(0)
		for _, item := range batch {
			if item.seq > maxSeq {
				maxSeq = item.seq
			}
		}
		if maxSeq > 0 {
			if err := b.journal.Commit(maxSeq); err != nil {
				return fmt.Errorf("journal commit seq=%d: %w", maxSeq, err)
			}
		}
	}
	return nil
}

// UpsertBillBatch applies a batch of bill events in a single
// transaction. Later events for the same bill win. If the batch fails
// it is retried event-by-event to salvage as much as possible.
func (s *Store) UpsertBillBatch(events []*model.BillEvent) error {
	if len(events) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.upsertBatchTx(ctx, events)
	if err == nil {
		return nil
	}

	var failed int
	for _, ev := range events {
		if rerr := s.upsertBatchTx(ctx, []*model.BillEvent{ev}); rerr != nil {
			failed++
			log.Printf("duckdb: dropping event (bill=%s): %v", ev.Bill.ID, rerr)
		}
	}
	if failed > 0 {
		log.Printf("duckdb: batch partially failed — %d/%d events dropped", failed, len(events))
	}
	return nil
}

func (s *Store) upsertBatchTx(ctx context.Context, events []*model.BillEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bills (id, number, title, summary, chamber, status, topic, sponsor, introduced, last_action, action_text, impact_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			number = excluded.number,
			title = excluded.title,
			summary = excluded.summary,
			chamber = excluded.chamber,
			status = excluded.status,
			topic = excluded.topic,
			sponsor = excluded.sponsor,
			introduced = excluded.introduced,
			last_action = excluded.last_action,
			action_text = excluded.action_text,
			impact_score = excluded.impact_score`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		b := ev.Bill
		if b.ID == "" {
			return fmt.Errorf("event upsert: bill has no id")
		}

		var introduced, lastAction any
		if !b.Introduced.IsZero() {
			introduced = b.Introduced
		}
		if !b.LastAction.IsZero() {
			lastAction = b.LastAction
		}

		if _, err := stmt.ExecContext(ctx,
			b.ID, b.Number, b.Title, b.Summary, b.Chamber, b.Status,
			b.Topic, b.Sponsor, introduced, lastAction, b.ActionText,
			b.ImpactScore,
		); err != nil {
			return fmt.Errorf("event upsert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// InsertNoticeBatch inserts notices, ignoring IDs that already exist.
func (s *Store) InsertNoticeBatch(notices []*model.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notices (id, level, title, description, bill_id, created_at, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range notices {
		if n.ID == "" {
			return fmt.Errorf("notice insert: notice has no id")
		}
		createdAt := n.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		var resolvedAt any
		if !n.ResolvedAt.IsZero() {
			resolvedAt = n.ResolvedAt
		}
		if _, err := stmt.ExecContext(ctx,
			n.ID, n.Level, n.Title, n.Description, n.BillID, createdAt, resolvedAt,
		); err != nil {
			return fmt.Errorf("notice insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ResolveNotice marks a notice resolved, removing it from the banner
// rotation on the next refresh.
func (s *Store) ResolveNotice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"UPDATE notices SET resolved_at = ? WHERE id = ? AND resolved_at IS NULL",
		time.Now().UTC(), id)
	return err
}
