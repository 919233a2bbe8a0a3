// Package download fetches the PDFs of selected papers.
package download

import (
	"strings"

	"github.com/matsen/axd/internal/paper"
)

// Filename renders a filename style for p. Each $attribute is replaced in
// paper.Attributes order and path separators in the values become '_'.
// If the result is longer than nameMax bytes, "<id>.pdf" is returned and
// fallback is true. A nameMax of zero or less disables the limit.
func Filename(style string, p paper.Paper, nameMax int) (name string, fallback bool) {
	name = style
	for _, attr := range paper.Attributes {
		value, _ := p.Attribute(attr)
		name = strings.ReplaceAll(name, "$"+attr, sanitize(value))
	}
	if nameMax > 0 && len(name) > nameMax {
		return sanitize(p.ID) + ".pdf", true
	}
	return name, false
}

// sanitize makes a value safe to use inside a single path element.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	return strings.ReplaceAll(s, "\x00", "")
}
