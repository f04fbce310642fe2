package model

import "time"

// Bill represents a single tracked piece of legislation.
// It is the canonical type for storage, transport (socket RPC), and display.
type Bill struct {
	ID          string
	Number      string // e.g. "HB 1042"
	Title       string
	Summary     string
	Chamber     string // "house", "senate", "joint"
	Status      string // INTRODUCED/COMMITTEE/FLOOR/PASSED/ENACTED/VETOED/DEAD
	Topic       string
	Sponsor     string
	Introduced  time.Time
	LastAction  time.Time
	ActionText  string // most recent action, verbatim from the feed
	ImpactScore int    // 0-100, editorial weighting
}

// Notice is a high-priority alert shown in the rotating banner.
// Banner rotation order is the order notices are supplied in; the banner
// identifies notices by position, not by ID.
type Notice struct {
	ID          string
	Level       string // INFO/ACTION/URGENT
	Title       string
	Description string
	BillID      string // empty = not tied to a bill
	CreatedAt   time.Time
	ResolvedAt  time.Time // zero value = still active
}

// Bookmark pins a bill to the dashboard's bookmark list.
type Bookmark struct {
	BillID    string
	Note      string
	CreatedAt time.Time
}

// StatusCount represents grouped bill counts by a single status value.
type StatusCount struct {
	Status string
	Count  int64
}

// TopicCount represents a topic and how many tracked bills carry it.
type TopicCount struct {
	Topic string
	Count int64
}

// WeekImpact represents bill activity counts for one week,
// broken down by status bucket. Feeds the impact chart.
type WeekImpact struct {
	Week       time.Time
	Introduced int64
	Committee  int64
	Floor      int64
	Passed     int64
	Enacted    int64
	Dead       int64
	Total      int64
}

// BillEvent is one ingested change to a bill, as received from a feed.
// Events are journaled before they are applied to the store.
type BillEvent struct {
	Bill       Bill
	ReceivedAt time.Time
	Source     string // "http", "seed"
}
