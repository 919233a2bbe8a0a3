package main

import (
	"errors"

	"github.com/matsen/axd/internal/config"
	"github.com/matsen/axd/internal/filter"
	"github.com/matsen/axd/internal/selection"
)

// Exit codes
const (
	ExitSuccess        = 0 // Success
	ExitError          = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError    = 2 // Missing or invalid configuration
	ExitDataError      = 3 // A category could not be fetched or parsed
	ExitSelectionError = 4 // Download selection out of range or malformed
)

// exitCodeFor maps an error returned by a command to its exit code.
func exitCodeFor(err error) int {
	var catErr *filter.CategoryError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrNotConfigured), errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.As(err, &catErr):
		return ExitDataError
	case errors.Is(err, selection.ErrOutOfRange), errors.Is(err, selection.ErrInvalidSelection):
		return ExitSelectionError
	}
	return ExitError
}
