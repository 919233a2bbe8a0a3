// Package selection parses the operator's choice of papers to download.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSelection is returned for input that is not a list of integers.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrOutOfRange is returned for an index outside the displayed listing.
	ErrOutOfRange = errors.New("selection out of range")
)

// Parse reads space-separated indices into a listing of n papers.
// Indices must lie in [0, n). Repeated indices are kept once, at their first
// position. Empty input selects nothing and returns nil.
func Parse(input string, n int) ([]int, error) {
	fields := strings.Fields(strings.ReplaceAll(input, ",", " "))
	if len(fields) == 0 {
		return nil, nil
	}

	seen := make(map[int]bool, len(fields))
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an index", ErrInvalidSelection, f)
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: %d (listing has %d papers)", ErrOutOfRange, i, n)
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out, nil
}
