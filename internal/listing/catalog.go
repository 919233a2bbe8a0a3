package listing

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// recentLink matches the per-category "recent" links of the front page.
var recentLink = regexp.MustCompile(`^/list/([^/]+)/recent$`)

// Category is one subscribable listing.
type Category struct {
	ID    string `json:"id"`    // e.g. hep-th, astro-ph.CO
	Name  string `json:"name"`  // e.g. High Energy Physics - Theory
	Group string `json:"group"` // front-page heading, e.g. Physics
}

// Catalog scrapes the front page for the categories that have listings,
// in page order.
func (c *Client) Catalog(ctx context.Context) ([]Category, error) {
	doc, err := c.document(ctx, c.baseURL+"/")
	if err != nil {
		return nil, err
	}

	cats := parseCatalog(doc)
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: no category links on front page", ErrStructureMismatch)
	}
	return cats, nil
}

func parseCatalog(doc *goquery.Document) []Category {
	var cats []Category
	seen := make(map[string]bool)

	doc.Find(`a[href^="/list/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := recentLink.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true

		name := strings.TrimSpace(a.Text())
		if name == "" || name == "recent" {
			name = strings.TrimSpace(a.PrevAllFiltered(`a[id^="main-"]`).First().Text())
		}
		if name == "" {
			name = m[1]
		}

		group := strings.TrimSpace(a.Closest("ul").PrevAllFiltered("h2").First().Text())

		cats = append(cats, Category{ID: m[1], Name: name, Group: group})
	})

	return cats
}
