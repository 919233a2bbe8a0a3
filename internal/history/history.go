// Package history keeps a log of digest runs. The JSONL file is the source
// of truth; the SQLite database is a cache rebuilt from it.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/matsen/axd/internal/filter"
)

const (
	// Dir is the state directory under the download directory.
	Dir = ".axd"
	// LogFile holds one RunRecord per line.
	LogFile = "runs.jsonl"
	// DBFile is the query cache.
	DBFile = "history.db"
)

// MaxLineCapacity is the largest record line ReadAll accepts.
const MaxLineCapacity = 1024 * 1024

// Run records the counts of one digest run. Paper identifiers are not kept.
type Run struct {
	ID         string          `json:"id"`
	Time       time.Time       `json:"time"`
	Date       string          `json:"date"` // YYYY-MM-DD, the digest day
	Source     string          `json:"source"`
	Categories []string        `json:"categories"`
	Accepted   int             `json:"accepted"`
	Counters   filter.Counters `json:"counters"`
	Failures   []string        `json:"failures,omitempty"` // categories that could not be fetched
	Emailed    bool            `json:"emailed"`
	Downloaded int             `json:"downloaded"`
}

// NewRun creates a record with a fresh ID for a pipeline result.
func NewRun(now time.Time, source string, categories []string, res *filter.Result) Run {
	r := Run{
		ID:         uuid.NewString(),
		Time:       now.UTC(),
		Date:       now.Format("2006-01-02"),
		Source:     source,
		Categories: categories,
	}
	if res != nil {
		r.Accepted = len(res.Papers)
		r.Counters = res.Counters
		for _, f := range res.Failures {
			r.Failures = append(r.Failures, f.Category)
		}
	}
	return r
}

// Total returns the number of candidates the run examined.
func (r Run) Total() int {
	return r.Accepted + r.Counters.Rejected()
}

// LogPath returns the run log path under a download directory.
func LogPath(root string) string {
	return filepath.Join(root, Dir, LogFile)
}

// DBPath returns the cache path under a download directory.
func DBPath(root string) string {
	return filepath.Join(root, Dir, DBFile)
}

// ErrEmptyID is returned when appending a record without an ID.
var ErrEmptyID = errors.New("run record has no id")

// Append adds a record to the end of the log, creating it if needed.
func Append(path string, r Run) error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening run log for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing run: %w", err)
	}
	return nil
}

// ReadAll reads every record of the log. A missing log has no records.
func ReadAll(path string) ([]Run, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	var runs []Run
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, MaxLineCapacity), MaxLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var r Run
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		runs = append(runs, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}
	return runs, nil
}
