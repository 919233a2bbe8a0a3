package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/axd/internal/download"
	"github.com/matsen/axd/internal/filter"
	"github.com/matsen/axd/internal/paper"
)

// Constants for output formatting.
const (
	CategoryNameMaxLen = 50 // Used in the categories listing
	TextWrapWidth      = 76 // Wrap width for prompts and notes
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// warnf prints a warning to stderr.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// FailureResponse reports a category that could not be fetched.
type FailureResponse struct {
	Category string `json:"category"`
	Error    string `json:"error"`
}

// RunResponse is the JSON output of a digest run.
type RunResponse struct {
	Date       string            `json:"date"`
	Papers     []paper.Paper     `json:"papers"`
	Counters   filter.Counters   `json:"counters"`
	Total      int               `json:"total"`
	Failures   []FailureResponse `json:"failures,omitempty"`
	DigestPath string            `json:"digest_path"`
	Emailed    bool              `json:"emailed"`
	Downloads  []download.Result `json:"downloads,omitempty"`
}

func failureResponses(fs []*filter.CategoryError) []FailureResponse {
	var out []FailureResponse
	for _, f := range fs {
		out = append(out, FailureResponse{Category: f.Category, Error: f.Err.Error()})
	}
	return out
}

// truncateString shortens s to maxLen characters with "..." suffix if needed.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// centerPad returns the indentation that centers a bar of barWidth
// (plus its brackets) in a terminal of the given width.
func centerPad(barWidth, terminal int) string {
	n := (terminal - barWidth - 2) / 2
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
