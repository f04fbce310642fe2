package model

import "errors"

// ErrNotFound is returned when a lookup matches nothing. It crosses the
// socket RPC boundary, so both store and client return this sentinel.
var ErrNotFound = errors.New("not found")

// BillFilter holds optional filters applied to bill queries.
type BillFilter struct {
	Chamber string // empty = all chambers
	Status  string // empty = all statuses
	Topic   string // empty = all topics
	Search  string // substring match against number, title, sponsor
}

// BillQuerier provides read-only queries on tracked bills.
type BillQuerier interface {
	TotalBillCount(f BillFilter) (int64, error)
	ListBills(limit int, f BillFilter) ([]Bill, error)
	GetBill(id string) (*Bill, error)
	CountsByStatus(f BillFilter) ([]StatusCount, error)
	ImpactByWeek(f BillFilter) ([]WeekImpact, error)
	TopTopics(limit int) ([]TopicCount, error)
	ListChambers() ([]string, error)
}

// NoticeQuerier provides read access to banner notices.
type NoticeQuerier interface {
	ActiveNotices(limit int) ([]Notice, error)
}

// BookmarkStore provides bookmark CRUD for the dashboard.
type BookmarkStore interface {
	AddBookmark(billID, note string) error
	RemoveBookmark(billID string) error
	ListBookmarks() ([]Bookmark, error)
}

// NoticeResolver marks a notice as handled. The TUI asserts to this on its
// read client, which forwards the call over the socket.
type NoticeResolver interface {
	ResolveNotice(id string) error
}

// BillWriter provides the write side used by ingestion.
type BillWriter interface {
	UpsertBillBatch(events []*BillEvent) error
	InsertNoticeBatch(notices []*Notice) error
	ResolveNotice(id string) error
}

// ReadAPI is the unified read contract for read surfaces (HTTP and socket RPC).
type ReadAPI interface {
	BillQuerier
	NoticeQuerier
	BookmarkStore
}
