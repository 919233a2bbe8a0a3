// Package stats renders filter outcomes as a proportional bar.
package stats

import (
	"fmt"
	"strings"

	"github.com/matsen/axd/internal/ansi"
	"github.com/matsen/axd/internal/filter"
)

// Segment positions, in drawing order.
const (
	Accepted = iota
	Duplicate
	Category
	Keyword
	Replaced
	numSegments
)

// DefaultWidth is the bar width used when none is configured.
const DefaultWidth = 120

// terminalMargin is the room kept free beside the bar for the counts.
const terminalMargin = 10

// Segments holds the character width of each segment.
type Segments [numSegments]int

// Sum returns the total width.
func (s Segments) Sum() int {
	n := 0
	for _, w := range s {
		n += w
	}
	return n
}

// Widths splits width characters between the segments in proportion to their
// counts. Each rejected segment gets round-half-up(width*count/total)
// characters, at least one when its count is nonzero; the accepted segment
// takes what is left.
//
// When the accepted segment comes out negative, or empty although papers were
// accepted, it takes a character from the widest rejected segment wider than
// one (earliest on ties). When every nonzero rejected segment is down to one
// character, the one with the smallest count (latest on ties) is dropped.
//
// The result sums to width whenever total > 0. It is all zero when nothing
// was counted or width is not positive.
func Widths(c filter.Counters, accepted, width int) Segments {
	counts := Segments{accepted, c.Duplicate, c.Category, c.Keyword, c.Replaced}
	total := counts.Sum()

	var s Segments
	if total == 0 || width <= 0 {
		return s
	}

	for i := Duplicate; i < numSegments; i++ {
		if counts[i] == 0 {
			continue
		}
		w := (2*width*counts[i] + total) / (2 * total)
		if w < 1 {
			w = 1
		}
		s[i] = w
	}
	s[Accepted] = width - (s.Sum() - s[Accepted])

	for s[Accepted] < 0 || (s[Accepted] == 0 && counts[Accepted] > 0) {
		if donor := widestDonor(s); donor >= 0 {
			s[donor]--
			s[Accepted]++
			continue
		}
		victim := smallestNonzero(s, counts)
		if victim < 0 {
			break
		}
		s[Accepted] += s[victim]
		s[victim] = 0
	}

	return s
}

// widestDonor returns the widest rejected segment that can give up a
// character, or -1.
func widestDonor(s Segments) int {
	best := -1
	for i := Duplicate; i < numSegments; i++ {
		if s[i] > 1 && (best < 0 || s[i] > s[best]) {
			best = i
		}
	}
	return best
}

// smallestNonzero returns the nonzero rejected segment with the smallest
// count, preferring later segments on ties, or -1.
func smallestNonzero(s, counts Segments) int {
	best := -1
	for i := Duplicate; i < numSegments; i++ {
		if s[i] > 0 && (best < 0 || counts[i] <= counts[best]) {
			best = i
		}
	}
	return best
}

// FitWidth shrinks a requested bar width so the bar and its counts fit in a
// terminal of the given column count.
func FitWidth(requested, terminal int) int {
	if requested+terminalMargin > terminal {
		requested = terminal - terminalMargin
	}
	if requested < 0 {
		return 0
	}
	return requested
}

// Bar is a rendered-ready summary of one pipeline run.
type Bar struct {
	Segments Segments
	Rejected int
	Total    int
}

// New computes the bar for a run's counters and accepted count.
func New(c filter.Counters, accepted, width int) Bar {
	return Bar{
		Segments: Widths(c, accepted, width),
		Rejected: c.Rejected(),
		Total:    c.Rejected() + accepted,
	}
}

// Render draws the bar as "[===|==|=] rejected/total". Segments are
// separated by '|'. It returns "" when there is nothing to show.
func (b Bar) Render(p ansi.Palette) string {
	if b.Total == 0 || b.Segments.Sum() == 0 {
		return ""
	}

	colors := segmentColors(p)
	last := -1
	for i, w := range b.Segments {
		if w > 0 {
			last = i
		}
	}

	var sb strings.Builder
	sb.WriteString("[")
	for i, w := range b.Segments {
		if w == 0 {
			continue
		}
		var seg string
		if i == last {
			seg = strings.Repeat("=", w)
		} else {
			seg = strings.Repeat("=", w-1) + "|"
		}
		sb.WriteString(p.Wrap(seg, colors[i]))
	}
	sb.WriteString("]")
	sb.WriteString(p.Wrap(fmt.Sprintf(" %d/%d", b.Rejected, b.Total), p.White))
	return sb.String()
}

// Legend returns the color key printed above the bar.
func Legend(p ansi.Palette) string {
	labels := [numSegments]string{
		"(Shown Papers)",
		"(Duplicates)",
		"(Blacklisted Category)",
		"(Blacklisted Keywords)",
		"(Replaced Papers)",
	}
	colors := segmentColors(p)

	parts := make([]string, numSegments)
	for i, l := range labels {
		parts[i] = p.Wrap(l, colors[i])
	}
	return p.Wrap("Filter Statistics:", p.White) + " " + strings.Join(parts, " ")
}

func segmentColors(p ansi.Palette) [numSegments]string {
	return [numSegments]string{p.Blue, p.Yellow, p.Purple, p.Red, p.Black}
}
