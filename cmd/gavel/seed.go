package main

import (
	"log"
	"time"

	"github.com/gavelhq/gavel/internal/duckdb"
	"github.com/gavelhq/gavel/internal/model"
)

// seedDemoData loads a small fixed set of bills and notices so the dashboard
// has something to show on a fresh install. Skipped when bills already exist.
func seedDemoData(buffer *duckdb.IngestBuffer, store *duckdb.Store) {
	count, err := store.TotalBillCount(model.BillFilter{})
	if err != nil {
		log.Printf("seed: count check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	week := func(n int) time.Time { return now.AddDate(0, 0, -7*n) }

	bills := []model.Bill{
		{ID: "demo-hb-1042", Number: "HB 1042", Title: "Water Rights Modernization Act", Chamber: "house", Status: "FLOOR", Topic: "environment", Sponsor: "Rep. Ortega", Introduced: week(6), LastAction: now.AddDate(0, 0, -1), ActionText: "Placed on floor calendar", ImpactScore: 82, Summary: "Updates appropriation priority rules for municipal water systems."},
		{ID: "demo-sb-201", Number: "SB 201", Title: "Small Business Tax Relief", Chamber: "senate", Status: "COMMITTEE", Topic: "taxation", Sponsor: "Sen. Whitfield", Introduced: week(4), LastAction: now.AddDate(0, 0, -3), ActionText: "Referred to Finance Committee", ImpactScore: 64},
		{ID: "demo-hb-77", Number: "HB 77", Title: "Rural Broadband Expansion", Chamber: "house", Status: "PASSED", Topic: "infrastructure", Sponsor: "Rep. Chen", Introduced: week(10), LastAction: week(1), ActionText: "Passed third reading 61-38", ImpactScore: 71},
		{ID: "demo-sb-330", Number: "SB 330", Title: "Education Funding Formula Revision", Chamber: "senate", Status: "INTRODUCED", Topic: "education", Sponsor: "Sen. Douglas", Introduced: week(1), LastAction: week(1), ActionText: "First reading", ImpactScore: 90},
		{ID: "demo-hjr-5", Number: "HJR 5", Title: "Balanced Budget Amendment", Chamber: "joint", Status: "DEAD", Topic: "budget", Sponsor: "Rep. Imani", Introduced: week(12), LastAction: week(2), ActionText: "Failed committee vote", ImpactScore: 45},
		{ID: "demo-hb-1190", Number: "HB 1190", Title: "Healthcare Price Transparency", Chamber: "house", Status: "ENACTED", Topic: "healthcare", Sponsor: "Rep. Novak", Introduced: week(14), LastAction: week(1), ActionText: "Signed by the governor", ImpactScore: 77},
	}

	for i := range bills {
		buffer.Add(&model.BillEvent{
			Bill:       bills[i],
			ReceivedAt: now,
			Source:     "seed",
		})
	}

	notices := []*model.Notice{
		{ID: "demo-notice-1", Level: "URGENT", Title: "HB 1042 floor vote moved up to tomorrow", Description: "The floor vote was rescheduled a week early.", BillID: "demo-hb-1042", CreatedAt: now},
		{ID: "demo-notice-2", Level: "ACTION", Title: "SB 201 committee hearing accepting testimony", Description: "Written testimony closes Friday.", BillID: "demo-sb-201", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "demo-notice-3", Level: "INFO", Title: "SB 330 sponsor briefing published", BillID: "demo-sb-330", CreatedAt: now.Add(-6 * time.Hour)},
	}
	if err := store.InsertNoticeBatch(notices); err != nil {
		log.Printf("seed: inserting notices failed: %v", err)
	}

	log.Printf("seed: loaded %d demo bills and %d notices", len(bills), len(notices))
}
