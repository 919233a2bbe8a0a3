package listing

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matsen/axd/internal/paper"
)

// HTMLSource reads the "new submissions" page of each category.
type HTMLSource struct {
	client *Client
}

// NewHTMLSource creates a source backed by the given client.
func NewHTMLSource(c *Client) *HTMLSource {
	return &HTMLSource{client: c}
}

// ListingURL returns the new-submissions page of a category.
func (s *HTMLSource) ListingURL(category string) string {
	return s.client.baseURL + "/list/" + url.PathEscape(category) + "/new"
}

// Candidates fetches the category page and yields one paper per entry.
// Each <dt> header is paired with the <div class="meta"> block at the same
// position; differing counts mean the layout changed and nothing is yielded.
func (s *HTMLSource) Candidates(ctx context.Context, category string) iter.Seq2[paper.Paper, error] {
	return func(yield func(paper.Paper, error) bool) {
		doc, err := s.client.document(ctx, s.ListingURL(category))
		if err != nil {
			yield(paper.Paper{}, err)
			return
		}

		heads := doc.Find("dt")
		metas := doc.Find("div.meta")
		if heads.Length() != metas.Length() {
			yield(paper.Paper{}, fmt.Errorf("%w: %d listing headers but %d metadata blocks",
				ErrStructureMismatch, heads.Length(), metas.Length()))
			return
		}

		for i := 0; i < heads.Length(); i++ {
			if !yield(parseEntry(heads.Eq(i), metas.Eq(i)), nil) {
				return
			}
		}
	}
}

// parseEntry extracts a paper from a listing header and its metadata block.
func parseEntry(head, meta *goquery.Selection) paper.Paper {
	id := strings.TrimSpace(head.Find(`a[title="Abstract"]`).First().Text())
	id = strings.TrimSpace(strings.TrimPrefix(id, "arXiv:"))

	replaced := strings.Contains(head.Text(), "(replaced)") ||
		strings.Contains(head.PrevAllFiltered("h3").First().Text(), "Replacement")

	categories := labelled(meta.Find("div.list-subjects"), "Subjects:")
	title := labelled(meta.Find("div.list-title"), "Title:")
	comments := labelled(meta.Find("div.list-comments"), "Comments:")

	abstract := ""
	if p := meta.Find("p.mathjax").First(); p.Length() > 0 {
		abstract = strings.TrimSpace(strings.ReplaceAll(p.Text(), "\n", " "))
	}

	var authors []string
	meta.Find("div.list-authors a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			authors = append(authors, name)
		}
	})

	return paper.New(id, categories, title, abstract, strings.Join(authors, ", "), comments, replaced)
}

// labelled returns the text of sel with its leading label removed.
func labelled(sel *goquery.Selection, label string) string {
	text := strings.TrimSpace(sel.First().Text())
	return strings.TrimSpace(strings.TrimPrefix(text, label))
}
