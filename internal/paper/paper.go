// Package paper defines the listing record that flows through the digest pipeline.
package paper

import (
	"errors"
	"fmt"
)

// Missing is the placeholder stored when a listing has no abstract or no comments.
const Missing = "/"

// PDFBaseURL is the prefix of every paper's PDF link.
const PDFBaseURL = "https://arxiv.org/pdf/"

// Attributes lists the field names usable in filename styles, in substitution order.
var Attributes = []string{"arxivid", "url", "categories", "title", "abstract", "authors", "comments"}

// ErrInvalidPaper is returned when a listing lacks a field the filter depends on.
var ErrInvalidPaper = errors.New("invalid paper listing")

// Paper represents one entry of a category's new-submissions listing.
type Paper struct {
	ID         string `json:"arxivid"`    // e.g. 2401.01234
	Categories string `json:"categories"` // raw subject text, e.g. "High Energy Physics - Theory (hep-th); ..."
	Title      string `json:"title"`
	Abstract   string `json:"abstract"` // Missing if absent
	Authors    string `json:"authors"`  // comma-joined
	Comments   string `json:"comments"` // Missing if absent
	URL        string `json:"url"`
	Replaced   bool   `json:"replaced"` // listing announces a replacement, not a new paper
}

// New builds a Paper, deriving the URL from the ID and filling the
// Missing placeholder for an empty abstract or comments.
func New(id, categories, title, abstract, authors, comments string, replaced bool) Paper {
	if abstract == "" {
		abstract = Missing
	}
	if comments == "" {
		comments = Missing
	}
	return Paper{
		ID:         id,
		Categories: categories,
		Title:      title,
		Abstract:   abstract,
		Authors:    authors,
		Comments:   comments,
		URL:        URLFor(id),
		Replaced:   replaced,
	}
}

// URLFor returns the PDF URL of the paper with the given ID.
func URLFor(id string) string {
	return PDFBaseURL + id
}

// Validate checks the fields the filter cannot classify without.
func (p Paper) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id (title %q)", ErrInvalidPaper, p.Title)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: empty title for %s", ErrInvalidPaper, p.ID)
	}
	return nil
}

// Attribute returns the value of a filename-style attribute.
// The second return is false for names not in Attributes.
func (p Paper) Attribute(name string) (string, bool) {
	switch name {
	case "arxivid":
		return p.ID, true
	case "url":
		return p.URL, true
	case "categories":
		return p.Categories, true
	case "title":
		return p.Title, true
	case "abstract":
		return p.Abstract, true
	case "authors":
		return p.Authors, true
	case "comments":
		return p.Comments, true
	}
	return "", false
}

// IsAttribute reports whether name is a valid filename-style attribute.
func IsAttribute(name string) bool {
	for _, a := range Attributes {
		if a == name {
			return true
		}
	}
	return false
}
