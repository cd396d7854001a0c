package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ahmednasr/similar-trace/internal/metrics"
	"github.com/ahmednasr/similar-trace/internal/models"
)

// Client is a minimal wrapper around the issue search REST API.
// It only knows how to GET a list endpoint; query building happens upstream.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

// Options tunes a Client. Zero values pick the defaults.
type Options struct {
	Timeout time.Duration // default 10s
	RPS     float64       // requests per second; <= 0 disables limiting
	Burst   int           // default 1
	Metrics *metrics.Metrics
}

// NewClient returns a ready-to-use client. baseURL is the API root, e.g.
// "https://sentry.example.com/api/0"; token may be empty.
func NewClient(baseURL, token string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		limiter: rate.NewLimiter(limit, opts.Burst),
		metrics: opts.Metrics,
	}
}

// Page is one page of search results plus the cursors from the Link header.
type Page struct {
	Issues         []models.Issue
	NextCursor     string
	PreviousCursor string
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("issues: unexpected status %s", e.Status)
	}
	return fmt.Sprintf("issues: unexpected status %s: %s", e.Status, e.Body)
}

// ListIssues fetches path (e.g. "/organizations/acme/issues/") with params as
// the query string.
func (c *Client) ListIssues(ctx context.Context, path string, params url.Values) (Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Page{}, fmt.Errorf("issues: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Page{}, fmt.Errorf("issues: building request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	c.addHeaders(req)

	start := time.Now()
	var issues []models.Issue
	resp, err := c.do(req, &issues)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.UpstreamDone(time.Since(start), status, err)
	if err != nil {
		return Page{}, err
	}
	c.metrics.IssuesFetched(len(issues))

	next, prev := ParseLinkCursors(resp.Header.Get("Link"))
	return Page{Issues: issues, NextCursor: next, PreviousCursor: prev}, nil
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "similar-trace-api")
}

// do executes the HTTP request and decodes JSON into v.
func (c *Client) do(req *http.Request, v interface{}) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("issues: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp, fmt.Errorf("issues: decoding response: %w", err)
	}
	return resp, nil
}
