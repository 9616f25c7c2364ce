package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// SQLiteStore is the local cache and fallback copy of the hosted
// backend's data. One row per (user, day), allocations in a child table.
type SQLiteStore struct {
	db *sql.DB
}

var ErrProjectNotFound = errors.New("project not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	code TEXT NOT NULL DEFAULT '',
	client TEXT NOT NULL DEFAULT '',
	accounting_id TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS daily_entries (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	morning_start TEXT NOT NULL DEFAULT '',
	morning_end TEXT NOT NULL DEFAULT '',
	afternoon_start TEXT NOT NULL DEFAULT '',
	afternoon_end TEXT NOT NULL DEFAULT '',
	evening_start TEXT NOT NULL DEFAULT '',
	evening_end TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, date)
);

CREATE TABLE IF NOT EXISTS allocations (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	project_id TEXT NOT NULL,
	hours REAL NOT NULL CHECK(hours >= 0),
	PRIMARY KEY (user_id, date, project_id)
);

CREATE TABLE IF NOT EXISTS settings (
	user_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (user_id, key)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}

// PutDay replaces the stored entry for one (user, day). The entry's
// allocation list is written as-is, including an empty list.
func (s *SQLiteStore) PutDay(userID, date string, entry timesheet.DailyEntry) error {
	if err := validateDate(date); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := putDayTx(tx, userID, date, entry); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func putDayTx(tx *sql.Tx, userID, date string, entry timesheet.DailyEntry) error {
	const upsertStmt = `
INSERT INTO daily_entries (
	user_id, date,
	morning_start, morning_end,
	afternoon_start, afternoon_end,
	evening_start, evening_end,
	updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id, date) DO UPDATE SET
	morning_start = excluded.morning_start,
	morning_end = excluded.morning_end,
	afternoon_start = excluded.afternoon_start,
	afternoon_end = excluded.afternoon_end,
	evening_start = excluded.evening_start,
	evening_end = excluded.evening_end,
	updated_at = CURRENT_TIMESTAMP;`

	if _, err := tx.Exec(
		upsertStmt,
		userID, date,
		entry.Morning.Start, entry.Morning.End,
		entry.Afternoon.Start, entry.Afternoon.End,
		entry.Evening.Start, entry.Evening.End,
	); err != nil {
		return fmt.Errorf("upsert daily entry %s: %w", date, err)
	}

	if _, err := tx.Exec(
		`DELETE FROM allocations WHERE user_id = ? AND date = ?;`,
		userID, date,
	); err != nil {
		return fmt.Errorf("clear allocations %s: %w", date, err)
	}

	// Duplicate project IDs within one entry are merged by summing;
	// uniqueness per day is expected upstream but not guaranteed.
	const insertAllocation = `
INSERT INTO allocations (user_id, date, project_id, hours)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, date, project_id) DO UPDATE SET hours = hours + excluded.hours;`

	for _, allocation := range entry.ProjectAllocations {
		if _, err := tx.Exec(insertAllocation, userID, date, allocation.ProjectID, allocation.Hours); err != nil {
			return fmt.Errorf("insert allocation %s/%s: %w", date, allocation.ProjectID, err)
		}
	}

	return nil
}

// GetDay returns one day's entry. The second return value is false when
// the day was never saved.
func (s *SQLiteStore) GetDay(userID, date string) (timesheet.DailyEntry, bool, error) {
	if err := validateDate(date); err != nil {
		return timesheet.DailyEntry{}, false, err
	}

	const query = `
SELECT morning_start, morning_end, afternoon_start, afternoon_end, evening_start, evening_end
FROM daily_entries
WHERE user_id = ? AND date = ?;`

	var entry timesheet.DailyEntry
	err := s.db.QueryRow(query, userID, date).Scan(
		&entry.Morning.Start, &entry.Morning.End,
		&entry.Afternoon.Start, &entry.Afternoon.End,
		&entry.Evening.Start, &entry.Evening.End,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timesheet.DailyEntry{}, false, nil
		}
		return timesheet.DailyEntry{}, false, fmt.Errorf("query daily entry %s: %w", date, err)
	}

	allocations, err := s.loadAllocations(userID, date)
	if err != nil {
		return timesheet.DailyEntry{}, false, err
	}
	entry.ProjectAllocations = allocations

	return entry, true, nil
}

func (s *SQLiteStore) loadAllocations(userID, date string) ([]timesheet.ProjectTimeAllocation, error) {
	rows, err := s.db.Query(
		`SELECT project_id, hours FROM allocations WHERE user_id = ? AND date = ? ORDER BY project_id;`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("query allocations %s: %w", date, err)
	}
	defer rows.Close()

	allocations := make([]timesheet.ProjectTimeAllocation, 0, 4)
	for rows.Next() {
		var allocation timesheet.ProjectTimeAllocation
		if err := rows.Scan(&allocation.ProjectID, &allocation.Hours); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		allocations = append(allocations, allocation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocations: %w", err)
	}

	return allocations, nil
}

// DeleteDay removes one day's entry and its allocations.
func (s *SQLiteStore) DeleteDay(userID, date string) (bool, error) {
	if err := validateDate(date); err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM daily_entries WHERE user_id = ? AND date = ?;`, userID, date)
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("delete daily entry %s: %w", date, err)
	}
	if _, err := tx.Exec(`DELETE FROM allocations WHERE user_id = ? AND date = ?;`, userID, date); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("delete allocations %s: %w", date, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

// AllAllocations loads every day the user ever saved.
func (s *SQLiteStore) AllAllocations(userID string) (timesheet.AllAllocations, error) {
	const query = `
SELECT date, morning_start, morning_end, afternoon_start, afternoon_end, evening_start, evening_end
FROM daily_entries
WHERE user_id = ?
ORDER BY date;`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("query daily entries: %w", err)
	}
	defer rows.Close()

	all := make(timesheet.AllAllocations, 64)
	for rows.Next() {
		var (
			date  string
			entry timesheet.DailyEntry
		)
		if err := rows.Scan(
			&date,
			&entry.Morning.Start, &entry.Morning.End,
			&entry.Afternoon.Start, &entry.Afternoon.End,
			&entry.Evening.Start, &entry.Evening.End,
		); err != nil {
			return nil, fmt.Errorf("scan daily entry: %w", err)
		}
		entry.ProjectAllocations = make([]timesheet.ProjectTimeAllocation, 0, 4)
		all[date] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily entries: %w", err)
	}

	allocationRows, err := s.db.Query(
		`SELECT date, project_id, hours FROM allocations WHERE user_id = ? ORDER BY date, project_id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query allocations: %w", err)
	}
	defer allocationRows.Close()

	for allocationRows.Next() {
		var (
			date       string
			allocation timesheet.ProjectTimeAllocation
		)
		if err := allocationRows.Scan(&date, &allocation.ProjectID, &allocation.Hours); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		entry, ok := all[date]
		if !ok {
			continue
		}
		entry.ProjectAllocations = append(entry.ProjectAllocations, allocation)
		all[date] = entry
	}
	if err := allocationRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocations: %w", err)
	}

	return all, nil
}

// ReplicateDay copies one entry to every target date, one upsert per
// day inside a single transaction.
func (s *SQLiteStore) ReplicateDay(userID string, entry timesheet.DailyEntry, dates []string) (int, error) {
	for _, date := range dates {
		if err := validateDate(date); err != nil {
			return 0, err
		}
	}
	if len(dates) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	written := 0
	for _, date := range dates {
		if err := putDayTx(tx, userID, date, entry); err != nil {
			_ = tx.Rollback()
			return written, err
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("commit transaction: %w", err)
	}
	return written, nil
}
