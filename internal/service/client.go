// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package service talks to the remote analysis/redaction service. The
// service is an opaque collaborator: this package only shapes requests and
// reads responses.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/redact-studio/internal/httputil"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// DefaultBaseURL is the service root used when none is configured.
const DefaultBaseURL = "http://localhost:3000"

// Catalog endpoints.
const (
	pathHealth      = "/health"
	pathEntities    = "/supportedentities"
	pathRecognizers = "/recognizers"
)

// Client issues single-shot requests to the service.
type Client struct {
	http    *http.Client
	baseURL string
	cfg     types.ClientConfig
	log     *slog.Logger
}

// New returns a Client for cfg. A nil httpClient gets one with cfg.Timeout;
// a nil logger discards.
func New(httpClient *http.Client, cfg types.ClientConfig, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{http: httpClient, baseURL: base, cfg: cfg, log: logger}
}

// BaseURL returns the service root this client posts to.
func (c *Client) BaseURL() string { return c.baseURL }

// Post sends body to path with the given content type and returns the read
// response. Non-2xx statuses are not errors here; the caller reconciles them.
func (c *Client) Post(ctx context.Context, path string, body io.Reader, contentType string) (*httputil.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(ctx, req)
}

// Health returns the service health text.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, pathHealth, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

// SupportedEntities lists the entity types the service detects for lang.
func (c *Client) SupportedEntities(ctx context.Context, lang types.Language) ([]string, error) {
	return c.getList(ctx, pathEntities, lang)
}

// Recognizers lists the recognizer names the service runs for lang.
func (c *Client) Recognizers(ctx context.Context, lang types.Language) ([]string, error) {
	return c.getList(ctx, pathRecognizers, lang)
}

func (c *Client) getList(ctx context.Context, path string, lang types.Language) ([]string, error) {
	q := url.Values{}
	if lang != "" {
		q.Set("language", string(lang))
	}
	resp, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", path, err)
	}
	return out, nil
}

// get performs a GET and converts non-2xx statuses into a StatusError.
func (c *Client) get(ctx context.Context, path string, q url.Values) (*httputil.Response, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    httputil.ErrorMessage(resp.Body, ""),
		}
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, req *http.Request) (*httputil.Response, error) {
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	resp, err := httputil.Do(ctx, c.http, req, c.cfg.MaxResponseBytes)
	if err != nil {
		c.log.Debug("request failed", "method", req.Method, "url", req.URL.String(), "err", err)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	c.log.Debug("request settled",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
		"request_id", resp.RequestID,
	)
	return resp, nil
}

// StatusError reports a non-2xx catalog response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
