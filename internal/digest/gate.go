package digest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DayDir returns the directory that holds the digest and downloads of date.
func DayDir(root string, date time.Time) string {
	return filepath.Join(root, date.Format(DateLayout))
}

// ClaimDay creates the directory of date under root. first reports whether
// this call created it; only the first run of a day sends mail.
func ClaimDay(root string, date time.Time) (dir string, first bool, err error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", false, fmt.Errorf("creating download directory: %w", err)
	}

	dir = DayDir(root, date)
	if err := os.Mkdir(dir, 0755); err != nil {
		if os.IsExist(err) {
			return dir, false, nil
		}
		return "", false, fmt.Errorf("creating day directory: %w", err)
	}
	return dir, true, nil
}
