// Package ansi provides terminal colors and size detection.
package ansi

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Palette holds the escape sequences used for output. Every field acts like
// an opening parenthesis and must be closed with End.
type Palette struct {
	Black, Red, Green, Yellow, Blue, Purple, Cyan, White string
	Bold, Italic, Underline, End                         string
}

// NewPalette returns the ANSI palette, or an all-empty palette when colored is false.
func NewPalette(colored bool) Palette {
	if !colored {
		return Palette{}
	}
	return Palette{
		Black:     "\033[90m",
		Red:       "\033[91m",
		Green:     "\033[92m",
		Yellow:    "\033[93m",
		Blue:      "\033[94m",
		Purple:    "\033[95m",
		Cyan:      "\033[96m",
		White:     "\033[97m",
		Bold:      "\033[1m",
		Italic:    "\033[3m",
		Underline: "\033[4m",
		End:       "\033[0m",
	}
}

// Wrap surrounds s with the given codes and a closing End.
// It returns s unchanged for an empty palette.
func (p Palette) Wrap(s string, codes ...string) string {
	if p.End == "" {
		return s
	}
	prefix := ""
	for _, c := range codes {
		prefix += c
	}
	return prefix + s + p.End
}

// Width returns the column count of the terminal attached to f,
// or DefaultWidth when f is not a terminal.
func Width(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
