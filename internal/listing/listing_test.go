package listing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matsen/axd/internal/paper"
	"golang.org/x/time/rate"
)

const newPage = `<!DOCTYPE html>
<html><body>
<dl id="articles">
<h3>New submissions (showing 2 of 2 entries)</h3>
<dt>
  <a name="item1">[1]</a>
  <a href="/abs/2401.00001" title="Abstract" id="2401.00001">arXiv:2401.00001</a>
</dt>
<dd>
  <div class="meta">
    <div class="list-title mathjax"><span class="descriptor">Title:</span>
      Holographic Entanglement in de Sitter
    </div>
    <div class="list-authors">
      <a href="/a/smith_j_1">Jane Smith</a>,
      <a href="/a/doe_j_1">John Doe</a>
    </div>
    <div class="list-comments mathjax"><span class="descriptor">Comments:</span>
      12 pages, 3 figures
    </div>
    <div class="list-subjects"><span class="descriptor">Subjects:</span>
      <span class="primary-subject">High Energy Physics - Theory (hep-th)</span>; General Relativity and Quantum Cosmology (gr-qc)
    </div>
    <p class="mathjax">We study entanglement
in de Sitter space.
    </p>
  </div>
</dd>
<dt>
  <a name="item2">[2]</a>
  <a href="/abs/2401.00002" title="Abstract" id="2401.00002">arXiv:2401.00002</a>
</dt>
<dd>
  <div class="meta">
    <div class="list-title mathjax"><span class="descriptor">Title:</span> Untitled Notes</div>
    <div class="list-authors"><a href="/a/roe_r_1">Richard Roe</a></div>
    <div class="list-subjects"><span class="descriptor">Subjects:</span> High Energy Physics - Theory (hep-th)</div>
  </div>
</dd>
</dl>
<dl id="articles">
<h3>Replacement submissions (showing 1 of 1 entries)</h3>
<dt>
  <a name="item3">[3]</a>
  <a href="/abs/2312.09999" title="Abstract" id="2312.09999">arXiv:2312.09999</a> (replaced)
</dt>
<dd>
  <div class="meta">
    <div class="list-title mathjax"><span class="descriptor">Title:</span> Old Paper</div>
    <div class="list-authors"><a href="/a/x">X</a></div>
    <div class="list-subjects"><span class="descriptor">Subjects:</span> High Energy Physics - Theory (hep-th)</div>
  </div>
</dd>
</dl>
</body></html>`

const brokenPage = `<html><body><dl>
<dt><a title="Abstract">arXiv:2401.00001</a></dt>
<dt><a title="Abstract">arXiv:2401.00002</a></dt>
<dd><div class="meta"><div class="list-title">Title: Only one</div></div></dd>
</dl></body></html>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL),
		WithRSSBaseURL(srv.URL+"/rss"),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	)
}

func TestHTMLSource_Candidates(t *testing.T) {
	var gotPath, gotAgent string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(newPage))
	}))

	var papers []paper.Paper
	for p, err := range NewHTMLSource(client).Candidates(context.Background(), "hep-th") {
		if err != nil {
			t.Fatalf("Candidates() error = %v", err)
		}
		papers = append(papers, p)
	}

	if gotPath != "/list/hep-th/new" {
		t.Errorf("path = %q, want /list/hep-th/new", gotPath)
	}
	if gotAgent != UserAgent {
		t.Errorf("User-Agent = %q", gotAgent)
	}
	if len(papers) != 3 {
		t.Fatalf("got %d papers, want 3", len(papers))
	}

	p := papers[0]
	if p.ID != "2401.00001" {
		t.Errorf("ID = %q", p.ID)
	}
	if p.Title != "Holographic Entanglement in de Sitter" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Authors != "Jane Smith, John Doe" {
		t.Errorf("Authors = %q", p.Authors)
	}
	if p.Comments != "12 pages, 3 figures" {
		t.Errorf("Comments = %q", p.Comments)
	}
	wantCats := "High Energy Physics - Theory (hep-th); General Relativity and Quantum Cosmology (gr-qc)"
	if p.Categories != wantCats {
		t.Errorf("Categories = %q, want %q", p.Categories, wantCats)
	}
	if p.Abstract != "We study entanglement in de Sitter space." {
		t.Errorf("Abstract = %q", p.Abstract)
	}
	if p.URL != "https://arxiv.org/pdf/2401.00001" {
		t.Errorf("URL = %q", p.URL)
	}
	if p.Replaced {
		t.Error("first paper should not be a replacement")
	}

	if papers[1].Abstract != paper.Missing || papers[1].Comments != paper.Missing {
		t.Errorf("second paper placeholders = %q / %q", papers[1].Abstract, papers[1].Comments)
	}
	if !papers[2].Replaced {
		t.Error("third paper should be a replacement")
	}
}

func TestHTMLSource_StructureMismatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(brokenPage))
	}))

	n := 0
	var gotErr error
	for _, err := range NewHTMLSource(client).Candidates(context.Background(), "hep-th") {
		if err != nil {
			gotErr = err
			break
		}
		n++
	}
	if !errors.Is(gotErr, ErrStructureMismatch) {
		t.Errorf("error = %v, want ErrStructureMismatch", gotErr)
	}
	if n != 0 {
		t.Errorf("yielded %d papers before the error, want 0", n)
	}
}

func TestHTMLSource_NotFound(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())

	var gotErr error
	for _, err := range NewHTMLSource(client).Candidates(context.Background(), "nope") {
		gotErr = err
		break
	}
	if !IsNotFound(gotErr) {
		t.Errorf("error = %v, want not found", gotErr)
	}
	var httpErr *HTTPError
	if !errors.As(gotErr, &httpErr) || httpErr.StatusCode != 404 {
		t.Errorf("error = %v, want *HTTPError with 404", gotErr)
	}
}

func TestHTMLSource_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	var gotErr error
	for _, err := range NewHTMLSource(client).Candidates(context.Background(), "hep-th") {
		gotErr = err
		break
	}
	if !errors.Is(gotErr, ErrNetworkError) {
		t.Errorf("error = %v, want ErrNetworkError", gotErr)
	}
	if IsNotFound(gotErr) {
		t.Error("500 should not be reported as not found")
	}
}

func TestHTMLSource_EmptyListing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h3>No new submissions</h3></body></html>`))
	}))

	for _, err := range NewHTMLSource(client).Candidates(context.Background(), "hep-th") {
		t.Fatalf("expected no items, got error %v", err)
	}
}

func TestHTMLSource_CancelledContext(t *testing.T) {
	client := NewClient(WithBaseURL("http://127.0.0.1:1"))
	// Exhaust the burst so the next Wait blocks on the context.
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range NewHTMLSource(client).Candidates(ctx, "hep-th") {
		gotErr = err
		break
	}
	if gotErr == nil {
		t.Fatal("expected error for cancelled context")
	}
}

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss xmlns:arxiv="http://arxiv.org/schemas/atom" xmlns:dc="http://purl.org/dc/elements/1.1/" version="2.0">
<channel>
<title>hep-th updates on arXiv.org</title>
<link>http://rss.arxiv.org/rss/hep-th</link>
<description>hep-th updates</description>
<item>
  <title>Holographic Entanglement in de Sitter</title>
  <link>https://arxiv.org/abs/2401.00001</link>
  <description>arXiv:2401.00001v1 Announce Type: new
Abstract: We study entanglement
in de Sitter space.</description>
  <guid isPermaLink="false">oai:arXiv.org:2401.00001v1</guid>
  <category>hep-th</category>
  <category>gr-qc</category>
  <arxiv:announce_type>new</arxiv:announce_type>
  <dc:creator>Jane Smith, John Doe</dc:creator>
</item>
<item>
  <title>Old Paper</title>
  <link>https://arxiv.org/abs/2312.09999</link>
  <description>arXiv:2312.09999v3 Announce Type: replace
Abstract: Revised.</description>
  <guid isPermaLink="false">oai:arXiv.org:2312.09999v3</guid>
  <category>hep-th</category>
  <arxiv:announce_type>replace</arxiv:announce_type>
  <dc:creator>X</dc:creator>
</item>
</channel>
</rss>`

func TestRSSSource_Candidates(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(feed))
	}))

	var papers []paper.Paper
	for p, err := range NewRSSSource(client).Candidates(context.Background(), "hep-th") {
		if err != nil {
			t.Fatalf("Candidates() error = %v", err)
		}
		papers = append(papers, p)
	}

	if gotPath != "/rss/hep-th" {
		t.Errorf("path = %q", gotPath)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	p := papers[0]
	if p.ID != "2401.00001" {
		t.Errorf("ID = %q", p.ID)
	}
	if p.Categories != "hep-th, gr-qc" {
		t.Errorf("Categories = %q", p.Categories)
	}
	if p.Abstract != "We study entanglement in de Sitter space." {
		t.Errorf("Abstract = %q", p.Abstract)
	}
	if p.Authors != "Jane Smith, John Doe" {
		t.Errorf("Authors = %q", p.Authors)
	}
	if p.Comments != paper.Missing {
		t.Errorf("Comments = %q", p.Comments)
	}
	if p.Replaced {
		t.Error("new announcement marked replaced")
	}
	if !papers[1].Replaced {
		t.Error("replace announcement not marked replaced")
	}
}

func TestRSSSource_Malformed(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))

	var gotErr error
	for _, err := range NewRSSSource(client).Candidates(context.Background(), "hep-th") {
		gotErr = err
		break
	}
	if !errors.Is(gotErr, ErrStructureMismatch) {
		t.Errorf("error = %v, want ErrStructureMismatch", gotErr)
	}
}

const frontPage = `<html><body>
<h2>Physics</h2>
<ul>
<li><a id="main-astro-ph" href="/archive/astro-ph">Astrophysics</a>
 (<strong>astro-ph</strong> <a href="/list/astro-ph/new">new</a>, <a href="/list/astro-ph/recent">recent</a>)
 includes: <a href="/list/astro-ph.CO/recent">Cosmology and Nongalactic Astrophysics</a></li>
<li><a id="main-hep-th" href="/archive/hep-th">High Energy Physics - Theory</a>
 (<strong>hep-th</strong> <a href="/list/hep-th/new">new</a>, <a href="/list/hep-th/recent">recent</a>)</li>
</ul>
<h2>Computer Science</h2>
<ul>
<li><a id="main-cs" href="/archive/cs">Computing Research Repository</a>
 (<strong>CoRR</strong> <a href="/list/cs/new">new</a>, <a href="/list/cs/recent">recent</a>)</li>
</ul>
</body></html>`

func TestCatalog(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(frontPage))
	}))

	cats, err := client.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	want := []Category{
		{ID: "astro-ph", Name: "Astrophysics", Group: "Physics"},
		{ID: "astro-ph.CO", Name: "Cosmology and Nongalactic Astrophysics", Group: "Physics"},
		{ID: "hep-th", Name: "High Energy Physics - Theory", Group: "Physics"},
		{ID: "cs", Name: "Computing Research Repository", Group: "Computer Science"},
	}
	if len(cats) != len(want) {
		t.Fatalf("got %d categories, want %d: %+v", len(cats), len(want), cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, cats[i], want[i])
		}
	}
}

func TestCatalog_NoLinks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>maintenance</body></html>`))
	}))

	_, err := client.Catalog(context.Background())
	if !errors.Is(err, ErrStructureMismatch) {
		t.Errorf("error = %v, want ErrStructureMismatch", err)
	}
}
