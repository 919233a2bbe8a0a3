// Package filter decides which listings are shown to the reader.
package filter

import (
	"strings"

	"github.com/matsen/axd/internal/paper"
)

// Reason says why a candidate was rejected.
type Reason int

const (
	None     Reason = iota // accepted
	Replaced               // replacement of an earlier submission
	Category               // category blacklist hit
	Duplicate              // already accepted under an earlier category
	Keyword                // keyword blacklist hit
)

// String returns the reason name used in JSON output.
func (r Reason) String() string {
	switch r {
	case None:
		return "none"
	case Replaced:
		return "replaced"
	case Category:
		return "category"
	case Duplicate:
		return "duplicate"
	case Keyword:
		return "keyword"
	}
	return "unknown"
}

// Blacklist holds the category and keyword rules.
type Blacklist struct {
	// Categories are matched as literal, case-sensitive substrings of the raw
	// subject text, so "cs.CV" rejects "cs.CV; cs.LG".
	Categories []string
	// Keywords must be lowercase; they are matched as substrings of the
	// lowercased title and abstract.
	Keywords []string
}

// Check classifies a candidate against the rules and the papers accepted so far.
// Rules are applied in order: replaced, category, duplicate, keyword.
func (b Blacklist) Check(c paper.Paper, accepted []paper.Paper) Reason {
	if c.Replaced {
		return Replaced
	}

	for _, cat := range b.Categories {
		if strings.Contains(c.Categories, cat) {
			return Category
		}
	}

	for _, p := range accepted {
		if p.ID == c.ID {
			return Duplicate
		}
	}

	if len(b.Keywords) > 0 {
		title := strings.ToLower(c.Title)
		abstract := strings.ToLower(c.Abstract)
		for _, kw := range b.Keywords {
			if strings.Contains(title, kw) || strings.Contains(abstract, kw) {
				return Keyword
			}
		}
	}

	return None
}

// Counters tallies rejections for one pipeline run.
type Counters struct {
	Replaced  int `json:"replaced"`
	Category  int `json:"category_blacklisted"`
	Duplicate int `json:"duplicate"`
	Keyword   int `json:"keyword_blacklisted"`
}

// Add increments the counter matching r. None is a no-op.
func (c *Counters) Add(r Reason) {
	switch r {
	case Replaced:
		c.Replaced++
	case Category:
		c.Category++
	case Duplicate:
		c.Duplicate++
	case Keyword:
		c.Keyword++
	}
}

// Rejected returns the number of rejected candidates.
func (c Counters) Rejected() int {
	return c.Replaced + c.Category + c.Duplicate + c.Keyword
}
