package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite run cache.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the cache at path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			time TEXT NOT NULL,
			date TEXT NOT NULL,
			source TEXT NOT NULL,
			categories_json TEXT NOT NULL,
			accepted INTEGER NOT NULL,
			replaced INTEGER NOT NULL,
			category_blacklisted INTEGER NOT NULL,
			duplicate INTEGER NOT NULL,
			keyword_blacklisted INTEGER NOT NULL,
			failures TEXT,
			emailed INTEGER NOT NULL,
			downloaded INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(date);
	`
	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the cache and reloads it from the run log.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	runs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return 0, fmt.Errorf("clearing runs table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO runs (
			id, time, date, source, categories_json, accepted,
			replaced, category_blacklisted, duplicate, keyword_blacklisted,
			failures, emailed, downloaded
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing runs insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range runs {
		categoriesJSON, err := json.Marshal(r.Categories)
		if err != nil {
			return 0, fmt.Errorf("marshaling categories for %s: %w", r.ID, err)
		}
		_, err = stmt.Exec(
			r.ID, r.Time.Format(time.RFC3339), r.Date, r.Source, string(categoriesJSON), r.Accepted,
			r.Counters.Replaced, r.Counters.Category, r.Counters.Duplicate, r.Counters.Keyword,
			strings.Join(r.Failures, ","), r.Emailed, r.Downloaded,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting run %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing runs: %w", err)
	}
	return len(runs), nil
}

// Day aggregates the runs of one digest day.
type Day struct {
	Date       string `json:"date"`
	Runs       int    `json:"runs"`
	Accepted   int    `json:"accepted"`
	Replaced   int    `json:"replaced"`
	Category   int    `json:"category_blacklisted"`
	Duplicate  int    `json:"duplicate"`
	Keyword    int    `json:"keyword_blacklisted"`
	Failed     int    `json:"failed_runs"`
	Downloaded int    `json:"downloaded"`
}

// Total returns the candidates examined over all runs of the day.
func (d Day) Total() int {
	return d.Accepted + d.Replaced + d.Category + d.Duplicate + d.Keyword
}

// Days returns per-day totals, most recent first. A limit of zero or less
// returns every day.
func (d *DB) Days(limit int) ([]Day, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.Query(`
		SELECT date, COUNT(*),
			SUM(accepted), SUM(replaced), SUM(category_blacklisted),
			SUM(duplicate), SUM(keyword_blacklisted),
			SUM(CASE WHEN failures != '' THEN 1 ELSE 0 END),
			SUM(downloaded)
		FROM runs
		GROUP BY date
		ORDER BY date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	var days []Day
	for rows.Next() {
		var day Day
		if err := rows.Scan(&day.Date, &day.Runs, &day.Accepted, &day.Replaced, &day.Category,
			&day.Duplicate, &day.Keyword, &day.Failed, &day.Downloaded); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// Count returns the number of cached runs.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
