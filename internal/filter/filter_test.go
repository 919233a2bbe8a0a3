package filter

import (
	"testing"

	"github.com/matsen/axd/internal/paper"
)

func mk(id, cats, title, abstract string, replaced bool) paper.Paper {
	return paper.New(id, cats, title, abstract, "A. Author", "", replaced)
}

func TestCheck_Order(t *testing.T) {
	accepted := []paper.Paper{mk("1", "cs.AI", "Foo", "bar", false)}

	tests := []struct {
		name string
		bl   Blacklist
		c    paper.Paper
		want Reason
	}{
		{
			name: "replaced wins over everything",
			bl:   Blacklist{Categories: []string{"cs.AI"}, Keywords: []string{"foo"}},
			c:    mk("1", "cs.AI", "Foo", "bar", true),
			want: Replaced,
		},
		{
			name: "category before duplicate",
			bl:   Blacklist{Categories: []string{"cs.AI"}},
			c:    mk("1", "cs.AI", "Foo", "bar", false),
			want: Category,
		},
		{
			name: "duplicate before keyword",
			bl:   Blacklist{Keywords: []string{"foo"}},
			c:    mk("1", "cs.LG", "Foo", "bar", false),
			want: Duplicate,
		},
		{
			name: "keyword in title",
			bl:   Blacklist{Keywords: []string{"gravity"}},
			c:    mk("2", "gr-qc", "Quantum Gravity", "/", false),
			want: Keyword,
		},
		{
			name: "keyword in abstract",
			bl:   Blacklist{Keywords: []string{"black hole"}},
			c:    mk("2", "gr-qc", "Title", "On a Black Hole", false),
			want: Keyword,
		},
		{
			name: "accepted",
			bl:   Blacklist{Categories: []string{"astro-ph"}, Keywords: []string{"gravity"}},
			c:    mk("2", "hep-th", "Strings", "abstract", false),
			want: None,
		},
		{
			name: "empty blacklists never reject",
			bl:   Blacklist{},
			c:    mk("2", "hep-th", "Strings", "/", false),
			want: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bl.Check(tt.c, accepted); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck_CategoryIsWholeStringSubstring(t *testing.T) {
	bl := Blacklist{Categories: []string{"cs.CV"}}
	c := mk("9", "cs.CV, cs.LG", "T", "A", false)
	if got := bl.Check(c, nil); got != Category {
		t.Errorf("Check() = %v, want Category", got)
	}
}

func TestCheck_CategoryIsCaseSensitive(t *testing.T) {
	bl := Blacklist{Categories: []string{"CS.CV"}}
	c := mk("9", "cs.CV", "T", "A", false)
	if got := bl.Check(c, nil); got != None {
		t.Errorf("Check() = %v, want None", got)
	}
}

func TestCheck_KeywordIsLiteralSubstring(t *testing.T) {
	bl := Blacklist{Keywords: []string{"ai"}}
	c := mk("9", "cs.LG", "A Pair of Networks", "/", false)
	if got := bl.Check(c, nil); got != Keyword {
		t.Errorf("Check() = %v, want Keyword (ai matches pair)", got)
	}
}

func TestCheck_PlaceholderAbstract(t *testing.T) {
	bl := Blacklist{Keywords: []string{"spin"}}
	c := mk("9", "cond-mat", "Lattices", paper.Missing, false)
	if got := bl.Check(c, nil); got != None {
		t.Errorf("Check() = %v, want None", got)
	}
}

func TestCounters_Add(t *testing.T) {
	var c Counters
	for _, r := range []Reason{None, Replaced, Category, Category, Duplicate, Keyword, None} {
		c.Add(r)
	}
	want := Counters{Replaced: 1, Category: 2, Duplicate: 1, Keyword: 1}
	if c != want {
		t.Errorf("Counters = %+v, want %+v", c, want)
	}
	if c.Rejected() != 5 {
		t.Errorf("Rejected() = %d, want 5", c.Rejected())
	}
}

func TestReason_String(t *testing.T) {
	if Duplicate.String() != "duplicate" {
		t.Errorf("Duplicate.String() = %q", Duplicate.String())
	}
	if Reason(42).String() != "unknown" {
		t.Errorf("Reason(42).String() = %q", Reason(42).String())
	}
}
