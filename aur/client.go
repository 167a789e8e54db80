// Package aur provides a minimal client for the AUR RPC interface,
// https://aur.archlinux.org/rpc.
package aur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the public AUR instance.
	DefaultBaseURL = "https://aur.archlinux.org"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client queries the AUR RPC v5 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different AUR instance.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type infoResponse struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Results []struct {
		Name    string `json:"Name"`
		Version string `json:"Version"`
	} `json:"results"`
}

// Versions returns the current AUR version for each named package in a single
// info query. Packages unknown to the AUR are simply absent from the result.
func (c *Client) Versions(ctx context.Context, names []string) (map[string]string, error) {
	versions := make(map[string]string, len(names))
	if len(names) == 0 {
		return versions, nil
	}

	q := url.Values{}
	q.Set("v", "5")
	q.Set("type", "info")
	for _, name := range names {
		q.Add("arg[]", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rpc?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("aur info: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aur info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aur info: unexpected status %d", resp.StatusCode)
	}

	var payload infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("aur info: decode response: %w", err)
	}

	if payload.Type == "error" {
		return nil, fmt.Errorf("aur info: rpc error: %s", payload.Error)
	}

	for _, result := range payload.Results {
		if result.Name != "" && result.Version != "" {
			versions[result.Name] = result.Version
		}
	}

	return versions, nil
}
