// Package client talks to a running `leveltrack serve` on this machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lazypower/leveltrack/internal/history"
	"github.com/lazypower/leveltrack/internal/store"
	"github.com/lazypower/leveltrack/internal/tracker"
)

const httpTimeout = 5 * time.Second

// Client talks to the leveltrack server.
type Client struct {
	http      *http.Client
	serverURL string
}

// New creates a client for the server at serverURL (e.g. http://127.0.0.1:37778).
func New(serverURL string) *Client {
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		serverURL: serverURL,
	}
}

// Health is the server's /api/health response.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	DB      bool   `json:"db"`
	DBPath  string `json:"db_path"`
}

// Health fetches the server's health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

// Record sends a record-today request.
func (c *Client) Record(ctx context.Context, in tracker.Input) (tracker.Recorded, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return tracker.Recorded{}, fmt.Errorf("encode input: %w", err)
	}
	var out tracker.Recorded
	if err := c.do(ctx, http.MethodPost, "/api/records", body, &out); err != nil {
		return tracker.Recorded{}, err
	}
	return out, nil
}

// History fetches the seven-day view.
func (c *Client) History(ctx context.Context) (history.View, error) {
	var out history.View
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &out); err != nil {
		return history.View{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", path, err)
	}

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		json.Unmarshal(data, &e)
		if e.Error == "" {
			e.Error = string(data)
		}
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return fmt.Errorf("%w (server: %s)", tracker.ErrInvalidInput, e.Error)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w (server: %s)", store.ErrStorageUnavailable, e.Error)
		}
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, e.Error)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}
