package digest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matsen/axd/internal/ansi"
	"github.com/matsen/axd/internal/filter"
	"github.com/matsen/axd/internal/paper"
)

// DateLayout formats the day of a digest.
const DateLayout = "2006-01-02"

// Digest is the content of one day's digest file.
type Digest struct {
	Date              time.Time
	Categories        []string
	CategoryBlacklist []string
	KeywordBlacklist  []string
	ConfigPath        string
	Papers            []paper.Paper
	Counters          filter.Counters
	Failures          []*filter.CategoryError
}

// FileName returns the digest file name for date.
func FileName(date time.Time) string {
	return "digest-" + date.Format(DateLayout) + ".txt"
}

// Subject returns the mail subject for date.
func Subject(date time.Time) string {
	return "arXiv Digest " + date.Format(DateLayout)
}

// Text renders the digest as plain text.
func (d *Digest) Text() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "This is the daily arXiv digest for %s.\n", d.Date.Format(DateLayout))
	fmt.Fprintf(&sb, "Categories accessed: %s\n", list(d.Categories))
	fmt.Fprintf(&sb, "Blacklisted categories: %s\n", list(d.CategoryBlacklist))
	fmt.Fprintf(&sb, "Blacklisted keywords: %s\n", list(d.KeywordBlacklist))
	if d.ConfigPath != "" {
		fmt.Fprintf(&sb, "These can be changed in %s.\n", d.ConfigPath)
	}

	total := d.Counters.Rejected() + len(d.Papers)
	fmt.Fprintf(&sb, "\n%d of %d papers shown (duplicates %d, blacklisted categories %d, blacklisted keywords %d, replaced %d).\n",
		len(d.Papers), total, d.Counters.Duplicate, d.Counters.Category, d.Counters.Keyword, d.Counters.Replaced)

	for _, f := range d.Failures {
		fmt.Fprintf(&sb, "Could not fetch %s: %v\n", f.Category, f.Err)
	}

	if len(d.Papers) == 0 {
		sb.WriteString("\nNo new papers today.\n")
		return sb.String()
	}
	sb.WriteString(FormatPapers(d.Papers, ansi.NewPalette(false)))
	return sb.String()
}

// WriteFile writes the digest into dir, replacing an earlier digest of the
// same day, and returns its path.
func (d *Digest) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating digest directory: %w", err)
	}
	path := filepath.Join(dir, FileName(d.Date))
	if err := os.WriteFile(path, []byte(d.Text()), 0644); err != nil {
		return "", fmt.Errorf("writing digest: %w", err)
	}
	return path, nil
}

func list(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
