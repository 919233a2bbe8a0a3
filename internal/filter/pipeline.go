package filter

import (
	"context"
	"fmt"
	"iter"

	"github.com/matsen/axd/internal/paper"
)

// Source yields the new listings of one category.
// An error ends the category; the pipeline does not resume it.
type Source interface {
	Candidates(ctx context.Context, category string) iter.Seq2[paper.Paper, error]
}

// ErrorPolicy decides what happens after a category fails.
type ErrorPolicy int

const (
	// HaltOnError stops at the first failed category and returns the error.
	HaltOnError ErrorPolicy = iota
	// SkipOnError records the failure and moves on to the next category.
	SkipOnError
)

// CategoryError reports a failed category fetch.
type CategoryError struct {
	Category string
	Err      error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %s: %v", e.Category, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Papers are the accepted listings: whitelist order first, then source order.
	// Positions in this slice are the indices offered for download.
	Papers   []paper.Paper
	Counters Counters
	// Failures holds the categories skipped under SkipOnError.
	Failures []*CategoryError
}

// Run filters every whitelisted category in order. The accepted list is shared
// across categories, so a paper cross-listed in two of them is kept only once.
//
// When a category fails, its partial contribution is discarded. Under
// HaltOnError the result of the preceding categories is returned together
// with the *CategoryError.
func Run(ctx context.Context, whitelist []string, bl Blacklist, src Source, policy ErrorPolicy) (*Result, error) {
	res := &Result{Papers: []paper.Paper{}}

	for _, cat := range whitelist {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		mark := len(res.Papers)
		saved := res.Counters

		if err := runCategory(ctx, cat, bl, src, res); err != nil {
			res.Papers = res.Papers[:mark]
			res.Counters = saved

			catErr := &CategoryError{Category: cat, Err: err}
			if policy == HaltOnError {
				return res, catErr
			}
			res.Failures = append(res.Failures, catErr)
		}
	}

	return res, nil
}

func runCategory(ctx context.Context, cat string, bl Blacklist, src Source, res *Result) error {
	for c, err := range src.Candidates(ctx, cat) {
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}

		reason := bl.Check(c, res.Papers)
		if reason != None {
			res.Counters.Add(reason)
			continue
		}
		res.Papers = append(res.Papers, c)
	}
	return nil
}
