// Package dispatch triggers package build workflows through the GitHub
// workflow-dispatch API. The build workflow itself (makepkg, signing, upload)
// lives in the repository's CI and is outside this program.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the public GitHub API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	defaultWorkflow = "build.yml"
	defaultRef      = "master"
)

// Config identifies the repository and workflow to dispatch.
type Config struct {
	Token      string
	Repository string // owner/repo
	Workflow   string // workflow file name, defaults to build.yml
	Ref        string // git ref the workflow runs on, defaults to master
}

// Client triggers workflow dispatches.
type Client struct {
	config     Config
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, e.g. a test server.
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

// NewClient creates a Client. Token and repository are required.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("new dispatch client: token cannot be empty")
	}
	if cfg.Repository == "" {
		return nil, fmt.Errorf("new dispatch client: repository cannot be empty")
	}
	if cfg.Workflow == "" {
		cfg.Workflow = defaultWorkflow
	}
	if cfg.Ref == "" {
		cfg.Ref = defaultRef
	}

	c := &Client{
		config:     cfg,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type dispatchRequest struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs"`
}

// TriggerBuild dispatches the build workflow for a single package. GitHub
// answers 204 on success; anything outside 2xx is an error.
func (c *Client) TriggerBuild(ctx context.Context, pkg string) error {
	payload, err := json.Marshal(dispatchRequest{
		Ref:    c.config.Ref,
		Inputs: map[string]string{"repo-name": pkg},
	})
	if err != nil {
		return fmt.Errorf("trigger build %s: %w", pkg, err)
	}

	u := fmt.Sprintf("%s/repos/%s/actions/workflows/%s/dispatches", c.baseURL, c.config.Repository, c.config.Workflow)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("trigger build %s: %w", pkg, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trigger build %s: %w", pkg, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("trigger build %s: unexpected status %d", pkg, resp.StatusCode)
	}

	return nil
}
