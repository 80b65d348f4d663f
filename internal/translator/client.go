// Package translator is a client for a self-hosted Zotero translation
// server. Identifiers go to /search and URLs to /web, as decided by the
// input classifier; the raw input is the POST body.
package translator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cosmik-network/citefetch/internal/citation"
	"github.com/cosmik-network/citefetch/internal/classify"
	"github.com/cosmik-network/citefetch/internal/config"
)

const (
	// DefaultTimeout is the fixed request timeout. Single attempt only.
	DefaultTimeout = 10 * time.Second

	// Endpoint path segments, selected by the classifier decision.
	pathSearch = "/search"
	pathWeb    = "/web"
)

// Client is an HTTP client for a translation server. The credentials are
// read-only and provided at construction; the client never consults the
// environment itself.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a translation server client from credentials.
// Returns ErrNotConfigured when no server URL is configured, which the
// caller should treat as "comparison mode unavailable", not a failure.
func NewClient(creds config.Credentials, opts ...Option) (*Client, error) {
	if !creds.Enabled() {
		return nil, citation.ErrNotConfigured
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(creds.APIURL, "/"),
		apiKey:     creds.APIKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpointPath maps a routing decision to the server path.
func endpointPath(kind classify.Kind) string {
	if kind == classify.KindDOI {
		return pathSearch
	}
	return pathWeb
}

// Fetch performs exactly one POST with the raw identifier or URL as a
// text/plain body. Non-2xx statuses come back as a Result for verbatim
// display; only local failures produce an error.
func (c *Client) Fetch(ctx context.Context, d classify.Decision) (*citation.Result, error) {
	reqURL := c.baseURL + endpointPath(d.Kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(d.Value))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

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
		Source:      citation.SourceTranslator,
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		RequestURL:  reqURL,
	}, nil
}
