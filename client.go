package vacationmap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrStatus is wrapped by errors caused by a non-2xx response.
var ErrStatus = errors.New("unexpected HTTP status")

// Client talks to the travel log backend.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient creates a client. Only WithBaseURL and WithHTTPClient are relevant here.
func NewClient(opts ...Option) *Client {
	cfg := newConfig(opts)
	return newClient(cfg)
}

func newClient(cfg *Config) *Client {
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		hc:   cfg.HTTPClient,
	}
}

// URL resolves a server path against the base URL.
func (c *Client) URL(path string) string {
	return c.base + path
}

// Vacations fetches the full vacation collection from /api/vacations.
func (c *Client) Vacations(ctx context.Context) ([]Vacation, error) {
	body, err := c.get(ctx, c.URL("/api/vacations"))
	if err != nil {
		return nil, err
	}
	return DecodeVacations(body)
}

// GeoJSON fetches the raw document at url.
func (c *Client) GeoJSON(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP GET %s: %w %d", url, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
