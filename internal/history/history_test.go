package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matsen/axd/internal/filter"
	"github.com/matsen/axd/internal/paper"
)

func testRun(date string, accepted int, c filter.Counters, failures ...string) Run {
	ts, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	res := &filter.Result{Papers: make([]paper.Paper, accepted), Counters: c}
	for _, f := range failures {
		res.Failures = append(res.Failures, &filter.CategoryError{Category: f, Err: errors.New("boom")})
	}
	return NewRun(ts, "html", []string{"hep-th", "gr-qc"}, res)
}

func TestNewRun(t *testing.T) {
	r := testRun("2026-03-14", 4, filter.Counters{Duplicate: 2, Replaced: 1}, "gr-qc")
	if r.ID == "" {
		t.Error("ID is empty")
	}
	if r.Date != "2026-03-14" {
		t.Errorf("Date = %q", r.Date)
	}
	if r.Accepted != 4 || r.Total() != 7 {
		t.Errorf("Accepted = %d, Total() = %d", r.Accepted, r.Total())
	}
	if len(r.Failures) != 1 || r.Failures[0] != "gr-qc" {
		t.Errorf("Failures = %v", r.Failures)
	}

	other := testRun("2026-03-14", 0, filter.Counters{})
	if other.ID == r.ID {
		t.Error("two runs share an ID")
	}
}

func TestPaths(t *testing.T) {
	if got := LogPath("/data"); got != "/data/.axd/runs.jsonl" {
		t.Errorf("LogPath() = %q", got)
	}
	if got := DBPath("/data"); got != "/data/.axd/history.db" {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestReadAll_NonExistentFile(t *testing.T) {
	runs, err := ReadAll("/nonexistent/path/runs.jsonl")
	if err != nil {
		t.Fatalf("ReadAll() error = %v (should return nil for nonexistent file)", err)
	}
	if len(runs) != 0 {
		t.Errorf("ReadAll() returned %d runs, want 0", len(runs))
	}
}

func TestAppendReadAll(t *testing.T) {
	path := LogPath(t.TempDir())

	first := testRun("2026-03-13", 3, filter.Counters{Keyword: 1})
	second := testRun("2026-03-14", 5, filter.Counters{Category: 2})
	second.Emailed = true
	second.Downloaded = 2

	for _, r := range []Run{first, second} {
		if err := Append(path, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	runs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ReadAll() returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != first.ID || runs[1].ID != second.ID {
		t.Error("runs out of order")
	}
	if !runs[1].Emailed || runs[1].Downloaded != 2 || runs[1].Counters.Category != 2 {
		t.Errorf("second run = %+v", runs[1])
	}
}

func TestAppend_EmptyID(t *testing.T) {
	if err := Append(filepath.Join(t.TempDir(), LogFile), Run{}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("Append() error = %v, want ErrEmptyID", err)
	}
}

func TestReadAll_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFile)
	if err := os.WriteFile(path, []byte("{\"id\":\"a\"}\n\nnot json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAll(path); err == nil {
		t.Error("ReadAll() should fail on a malformed line")
	}
}

func TestRebuildAndDays(t *testing.T) {
	root := t.TempDir()
	logPath := LogPath(root)

	runs := []Run{
		testRun("2026-03-13", 3, filter.Counters{Keyword: 1}),
		testRun("2026-03-14", 5, filter.Counters{Category: 2, Duplicate: 1}, "gr-qc"),
		testRun("2026-03-14", 5, filter.Counters{Category: 2, Duplicate: 1}),
	}
	runs[1].Downloaded = 2
	for _, r := range runs {
		if err := Append(logPath, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	db, err := OpenDB(DBPath(root))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromJSONL(logPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RebuildFromJSONL() = %d, want 3", n)
	}

	// Rebuilding twice must not duplicate rows.
	if _, err := db.RebuildFromJSONL(logPath); err != nil {
		t.Fatalf("second RebuildFromJSONL() error = %v", err)
	}
	if count, err := db.Count(); err != nil || count != 3 {
		t.Errorf("Count() = %d, %v; want 3", count, err)
	}

	days, err := db.Days(0)
	if err != nil {
		t.Fatalf("Days() error = %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("Days() returned %d days, want 2", len(days))
	}

	latest := days[0]
	if latest.Date != "2026-03-14" {
		t.Errorf("first day = %q, want most recent", latest.Date)
	}
	if latest.Runs != 2 || latest.Accepted != 10 || latest.Category != 4 || latest.Duplicate != 2 {
		t.Errorf("latest day = %+v", latest)
	}
	if latest.Failed != 1 || latest.Downloaded != 2 {
		t.Errorf("Failed = %d, Downloaded = %d", latest.Failed, latest.Downloaded)
	}
	if latest.Total() != 16 {
		t.Errorf("Total() = %d, want 16", latest.Total())
	}

	limited, err := db.Days(1)
	if err != nil || len(limited) != 1 {
		t.Errorf("Days(1) = %v, %v", limited, err)
	}
}
