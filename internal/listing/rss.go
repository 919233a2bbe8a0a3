package listing

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"regexp"
	"strings"

	"github.com/matsen/axd/internal/paper"
	"github.com/mmcdole/gofeed"
)

// versionSuffix matches the trailing version of an arXiv id, e.g. "v2".
var versionSuffix = regexp.MustCompile(`v\d+$`)

// RSSSource reads the per-category announcement feed. The feed carries no
// comments, so every paper it yields has paper.Missing comments.
type RSSSource struct {
	client *Client
	parser *gofeed.Parser
}

// NewRSSSource creates a feed source backed by the given client.
func NewRSSSource(c *Client) *RSSSource {
	return &RSSSource{client: c, parser: gofeed.NewParser()}
}

// FeedURL returns the announcement feed of a category.
func (s *RSSSource) FeedURL(category string) string {
	return s.client.rssURL + "/" + url.PathEscape(category)
}

// Candidates fetches the category feed and yields one paper per item.
func (s *RSSSource) Candidates(ctx context.Context, category string) iter.Seq2[paper.Paper, error] {
	return func(yield func(paper.Paper, error) bool) {
		body, err := s.client.get(ctx, s.FeedURL(category))
		if err != nil {
			yield(paper.Paper{}, err)
			return
		}
		defer body.Close()

		feed, err := s.parser.Parse(body)
		if err != nil {
			yield(paper.Paper{}, fmt.Errorf("%w: %v", ErrStructureMismatch, err))
			return
		}

		for _, item := range feed.Items {
			if !yield(paperFromItem(item), nil) {
				return
			}
		}
	}
}

// paperFromItem converts a feed item into a paper.
func paperFromItem(item *gofeed.Item) paper.Paper {
	id := ""
	if i := strings.Index(item.Link, "/abs/"); i >= 0 {
		id = item.Link[i+len("/abs/"):]
	} else {
		id = strings.TrimPrefix(item.GUID, "oai:arXiv.org:")
	}
	id = versionSuffix.ReplaceAllString(strings.TrimSpace(id), "")

	announce := announceType(item)
	replaced := strings.HasPrefix(announce, "replace")

	abstract := item.Description
	if i := strings.Index(abstract, "Abstract:"); i >= 0 {
		abstract = abstract[i+len("Abstract:"):]
	}
	abstract = strings.TrimSpace(strings.ReplaceAll(abstract, "\n", " "))

	var authors string
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		authors = strings.Join(item.DublinCoreExt.Creator, ", ")
	} else {
		names := make([]string, 0, len(item.Authors))
		for _, a := range item.Authors {
			names = append(names, a.Name)
		}
		authors = strings.Join(names, ", ")
	}

	return paper.New(id, strings.Join(item.Categories, ", "), strings.TrimSpace(item.Title),
		abstract, authors, "", replaced)
}

// announceType returns the arxiv:announce_type of an item ("new", "cross",
// "replace", "replace-cross"), falling back to the description text.
func announceType(item *gofeed.Item) string {
	if ns, ok := item.Extensions["arxiv"]; ok {
		if vals := ns["announce_type"]; len(vals) > 0 {
			return strings.TrimSpace(vals[0].Value)
		}
	}
	const marker = "Announce Type:"
	if i := strings.Index(item.Description, marker); i >= 0 {
		fields := strings.Fields(item.Description[i+len(marker):])
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}
