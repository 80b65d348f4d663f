// Package citoid is a client for Wikipedia's hosted citation service.
// One query is one GET request: the identifier or URL is percent-encoded
// into the path and the format selects a path segment. No authentication,
// no retry; a timeout or connection failure is terminal for that query.
package citoid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cosmik-network/citefetch/internal/citation"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Wikipedia REST API host.
	DefaultBaseURL = "https://en.wikipedia.org"

	// DefaultTimeout is the fixed request timeout. Single attempt only.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies this tool to the Wikimedia API, which
	// asks clients to send a descriptive User-Agent.
	DefaultUserAgent = "citefetch/1.0 (https://github.com/cosmik-network/citefetch)"

	// RateLimit caps outbound requests per second as a courtesy to the
	// public endpoint.
	RateLimit = 5.0

	// citationPath is the REST path prefix for the citation endpoint.
	citationPath = "/api/rest_v1/data/citation"
)

// Client is a rate-limited HTTP client for the Citoid API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Citoid client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestURL returns the full URL a fetch for this target and format
// will use. The target is percent-encoded into the final path segment,
// slashes included.
func (c *Client) RequestURL(target string, format citation.Format) string {
	return fmt.Sprintf("%s%s/%s/%s", c.baseURL, citationPath, format, url.PathEscape(target))
}

// Fetch performs exactly one request for the given identifier or URL and
// returns the raw response. Non-2xx statuses are returned as a Result so
// the caller can show the status and body verbatim; only local failures
// (timeout, DNS, refused connection) produce an error.
func (c *Client) Fetch(ctx context.Context, target string, format citation.Format) (*citation.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.RequestURL(target, format)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", citation.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", citation.ErrNetworkError, err)
	}

	return &citation.Result{
		Source:      citation.SourceCitoid,
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		RequestURL:  reqURL,
	}, nil
}
