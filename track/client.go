// Package track is the client SDK for reporting documentation visits to
// a docsight service. It is designed for fire-and-forget use from a docs
// server's request path: short timeout, no retries, errors surfaced but
// safe to ignore.
package track

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTimeout bounds a tracking call. Tracking must never hold up the
// page it is reporting on.
const DefaultTimeout = 2500 * time.Millisecond

// Options describes one visit.
type Options struct {
	Host      string `json:"host,omitempty"`
	Path      string `json:"path,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Accept    string `json:"accept,omitempty"`
	Country   string `json:"country,omitempty"`
}

// Result is the service's classification of the tracked visit.
type Result struct {
	OK       bool   `json:"ok"`
	Skipped  string `json:"skipped,omitempty"`
	Category string `json:"category,omitempty"`
	Agent    string `json:"agent,omitempty"`
	Filtered bool   `json:"filtered,omitempty"`
}

// Client posts visits to a docsight /track endpoint. A Client with an
// empty endpoint is explicitly disabled: every call is a silent no-op.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client for the given /track endpoint URL. Pass an
// empty endpoint to disable tracking (e.g. in development).
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Enabled reports whether the client will actually send anything.
func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

// TrackVisit reports one visit. The returned error is informational;
// callers on a request path should ignore it or log it at debug level.
func (c *Client) TrackVisit(ctx context.Context, o Options) (*Result, error) {
	if !c.Enabled() {
		return nil, nil
	}

	body, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal track payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post track event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("track endpoint returned %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode track response: %w", err)
	}
	return &result, nil
}
