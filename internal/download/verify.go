package download

import (
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when a downloaded file cannot be read as a PDF.
var ErrNotPDF = errors.New("downloaded file is not a PDF")

// Verify opens a downloaded file and returns its page count.
func Verify(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNotPDF, path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: %s has no pages", ErrNotPDF, path)
	}
	return n, nil
}
