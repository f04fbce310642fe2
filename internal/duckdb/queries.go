package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gavelhq/gavel/internal/model"
)

// ErrNotFound is returned when a bill lookup matches nothing.
var ErrNotFound = model.ErrNotFound

// billColumns is the select list shared by every bill query.
const billColumns = "id, number, title, summary, chamber, status, topic, sponsor, introduced, last_action, action_text, impact_score"

// billFilterClauses translates a BillFilter into WHERE conditions.
func billFilterClauses(f model.BillFilter) (conditions []string, args []interface{}) {
	if f.Chamber != "" {
		conditions = append(conditions, "chamber = ?")
		args = append(args, f.Chamber)
	}
	if f.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, f.Status)
	}
	if f.Topic != "" {
		conditions = append(conditions, "topic = ?")
		args = append(args, f.Topic)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		conditions = append(conditions,
			"(lower(number) LIKE ? OR lower(title) LIKE ? OR lower(sponsor) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// TotalBillCount returns the number of bills matching the filter.
func (s *Store) TotalBillCount(f model.BillFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	conditions, args := billFilterClauses(f)
	query := "SELECT COUNT(*) FROM bills" + whereClause(conditions)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListBills returns bills matching the filter, most recently acted-on first.
func (s *Store) ListBills(limit int, f model.BillFilter) ([]model.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	conditions, args := billFilterClauses(f)
	query := fmt.Sprintf("SELECT %s FROM bills%s ORDER BY last_action DESC, number ASC LIMIT ?",
		billColumns, whereClause(conditions))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			log.Printf("duckdb scan error (ListBills): %v", err)
			continue
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// GetBill returns a single bill by ID, or ErrNotFound.
func (s *Store) GetBill(id string) (*model.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM bills WHERE id = ?", billColumns), id)

	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CountsByStatus returns bill counts grouped by status.
func (s *Store) CountsByStatus(f model.BillFilter) ([]model.StatusCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	conditions, args := billFilterClauses(f)
	query := "SELECT status, COUNT(*) AS count FROM bills" + whereClause(conditions) +
		" GROUP BY status ORDER BY count DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.StatusCount
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			log.Printf("duckdb scan error (CountsByStatus): %v", err)
			continue
		}
		results = append(results, sc)
	}
	return results, rows.Err()
}

// ImpactByWeek returns bill activity bucketed by week of last action and
// status, oldest week first. Feeds the impact chart.
func (s *Store) ImpactByWeek(f model.BillFilter) ([]model.WeekImpact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	conditions, args := billFilterClauses(f)
	query := fmt.Sprintf(`
		SELECT
			date_trunc('week', last_action) AS week,
			COUNT(*) FILTER (WHERE status = 'INTRODUCED') AS introduced,
			COUNT(*) FILTER (WHERE status = 'COMMITTEE')  AS committee,
			COUNT(*) FILTER (WHERE status = 'FLOOR')      AS floor,
			COUNT(*) FILTER (WHERE status = 'PASSED')     AS passed,
			COUNT(*) FILTER (WHERE status = 'ENACTED')    AS enacted,
			COUNT(*) FILTER (WHERE status IN ('VETOED', 'DEAD')) AS dead,
			COUNT(*) AS total
		FROM bills%s
		GROUP BY week
		ORDER BY week ASC`, whereClause(conditions))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.WeekImpact
	for rows.Next() {
		var w model.WeekImpact
		var week sql.NullTime
		if err := rows.Scan(&week, &w.Introduced, &w.Committee, &w.Floor,
			&w.Passed, &w.Enacted, &w.Dead, &w.Total); err != nil {
			log.Printf("duckdb scan error (ImpactByWeek): %v", err)
			continue
		}
		if week.Valid {
			w.Week = week.Time
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

// TopTopics returns the most common bill topics.
func (s *Store) TopTopics(limit int) ([]model.TopicCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT topic, COUNT(*) AS count
		FROM bills
		WHERE topic != ''
		GROUP BY topic
		ORDER BY count DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.TopicCount
	for rows.Next() {
		var tc model.TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			log.Printf("duckdb scan error (TopTopics): %v", err)
			continue
		}
		results = append(results, tc)
	}
	return results, rows.Err()
}

// ListChambers returns the distinct chambers present in the data.
func (s *Store) ListChambers() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT chamber FROM bills ORDER BY chamber ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			log.Printf("duckdb scan error (ListChambers): %v", err)
			continue
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// ActiveNotices returns unresolved notices, most urgent first and
// newest within the same level. This ordering is the banner's rotation
// order.
func (s *Store) ActiveNotices(limit int) ([]model.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, level, title, description, bill_id, created_at, resolved_at
		FROM notices
		WHERE resolved_at IS NULL
		ORDER BY
			CASE level WHEN 'URGENT' THEN 0 WHEN 'ACTION' THEN 1 ELSE 2 END,
			created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Notice
	for rows.Next() {
		var n model.Notice
		var created, resolved sql.NullTime
		if err := rows.Scan(&n.ID, &n.Level, &n.Title, &n.Description,
			&n.BillID, &created, &resolved); err != nil {
			log.Printf("duckdb scan error (ActiveNotices): %v", err)
			continue
		}
		if created.Valid {
			n.CreatedAt = created.Time
		}
		if resolved.Valid {
			n.ResolvedAt = resolved.Time
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// AddBookmark pins a bill. Re-adding updates the note.
func (s *Store) AddBookmark(billID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (bill_id, note, created_at) VALUES (?, ?, ?)
		ON CONFLICT (bill_id) DO UPDATE SET note = excluded.note`,
		billID, note, time.Now().UTC())
	return err
}

// RemoveBookmark unpins a bill. Removing an absent bookmark is not an error.
func (s *Store) RemoveBookmark(billID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE bill_id = ?", billID)
	return err
}

// ListBookmarks returns bookmarks, newest first.
func (s *Store) ListBookmarks() ([]model.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, note, created_at FROM bookmarks ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Bookmark
	for rows.Next() {
		var b model.Bookmark
		var created sql.NullTime
		if err := rows.Scan(&b.BillID, &b.Note, &created); err != nil {
			log.Printf("duckdb scan error (ListBookmarks): %v", err)
			continue
		}
		if created.Valid {
			b.CreatedAt = created.Time
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// DeleteResolvedBefore removes notices resolved before the cutoff and
// returns the number of rows deleted.
func (s *Store) DeleteResolvedBefore(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM notices WHERE resolved_at IS NOT NULL AND resolved_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanner abstracts *sql.Row and *sql.Rows for scanBill.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(sc scanner) (model.Bill, error) {
	var b model.Bill
	var introduced, lastAction sql.NullTime
	err := sc.Scan(&b.ID, &b.Number, &b.Title, &b.Summary, &b.Chamber,
		&b.Status, &b.Topic, &b.Sponsor, &introduced, &lastAction,
		&b.ActionText, &b.ImpactScore)
	if err != nil {
		return b, err
	}
	if introduced.Valid {
		b.Introduced = introduced.Time
	}
	if lastAction.Valid {
		b.LastAction = lastAction.Time
	}
	return b, nil
}
