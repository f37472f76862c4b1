// Package matters is a thin client for a practice-management system that
// accepts tracked time entries against billing matters.
package matters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// ErrNotConfigured is returned when no matter-system base URL is set.
var ErrNotConfigured = errors.New("matter system is not configured (set matter_base_url)")

// Matter is a billable matter in the external system.
type Matter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimeEntry is a tracked-time submission against a matter.
type TimeEntry struct {
	ID          string  `json:"id,omitempty"`
	MatterID    string  `json:"matter_id"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	DurationSec float64 `json:"duration_sec"`
	Description string  `json:"description"`
}

// Client talks to the matter system over its REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the given base URL and access token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListMatters fetches the matters available to the authenticated user.
func (c *Client) ListMatters(ctx context.Context) ([]Matter, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.do(ctx, http.MethodGet, "/matters", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Matters []Matter `json:"matters"`
	}
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode matters response: %w", err)
	}
	return result.Matters, nil
}

// CreateTimeEntry submits a time entry and returns it with its assigned id.
func (c *Client) CreateTimeEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	if c.baseURL == "" {
		return TimeEntry{}, ErrNotConfigured
	}
	if entry.MatterID == "" {
		return TimeEntry{}, errors.New("time entry requires a matter id")
	}

	payload, err := sonic.Marshal(entry)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("encode time entry: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/time_entries", payload)
	if err != nil {
		return TimeEntry{}, err
	}

	var created TimeEntry
	if err := sonic.Unmarshal(body, &created); err != nil {
		return TimeEntry{}, fmt.Errorf("decode time entry response: %w", err)
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}
	return data, nil
}
