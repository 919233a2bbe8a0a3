package listing

import (
	"errors"
	"fmt"
)

// Errors returned by the listing sources.
var (
	// ErrCategoryNotFound indicates the listing page does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrStructureMismatch indicates the page no longer has the expected
	// layout, e.g. header and metadata counts differ.
	ErrStructureMismatch = errors.New("unexpected listing layout")

	// ErrNetworkError indicates the request failed or returned an error status.
	ErrNetworkError = errors.New("network error fetching listing")
)

// HTTPError carries the status of a failed request.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned %s", e.URL, e.Status)
}

// Unwrap maps the status onto the package sentinels.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrCategoryNotFound
	}
	return ErrNetworkError
}

// IsNotFound returns true if the error indicates a missing category.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}
