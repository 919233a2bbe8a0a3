// Package listing fetches new-submission listings and the category catalog from arXiv.
package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the arXiv web site.
	BaseURL = "https://arxiv.org"

	// RSSBaseURL serves per-category announcement feeds.
	RSSBaseURL = "https://rss.arxiv.org/rss"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RequestInterval is the pause arXiv asks automated clients to keep between requests.
	RequestInterval = 3 * time.Second

	// UserAgent is sent with every request; arXiv rejects empty agents.
	UserAgent = "Mozilla/5.0 (compatible; axd)"
)

// Client is a paced HTTP client for arXiv pages and feeds.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	rssURL     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the web site root (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRSSBaseURL sets the feed root (for testing).
func WithRSSBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.rssURL = url
	}
}

// WithLimiter replaces the request pacing limiter.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates a client that waits RequestInterval between requests.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(RequestInterval), 1),
		baseURL:    BaseURL,
		rssURL:     RSSBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches url and returns the open body of a successful response.
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}

// document fetches url and parses it as HTML.
func (c *Client) document(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}
