// Package httpx is the storefront API client and its round-trip interceptors.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseBody = 1 << 20
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// TransportError is a failure after the request was dispatched, with no response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// RequestError is a failure building the request or decoding a successful answer.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return "invalid request: " + e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// ClientConfig configures Client.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper // Optional: usually an interceptor Chain
	Jar       http.CookieJar    // Optional
}

// Client performs JSON calls against the storefront backend.
type Client struct {
	base *url.URL
	hc   *http.Client
}

// NewClient builds a Client. BaseURL must be an absolute http(s) URL.
func NewClient(cfg ClientConfig) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute http(s): %q", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base: base,
		hc: &http.Client{
			Timeout:   timeout,
			Transport: cfg.Transport,
			Jar:       cfg.Jar,
		},
	}, nil
}

// NewCookieJar returns a jar that scopes cookies by public suffix.
func NewCookieJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string { return c.base.String() }

// PostJSON sends body as JSON to path and decodes a successful answer into out.
// out may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// GetJSON fetches path and decodes a successful answer into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	target, err := c.resolve(path)
	if err != nil {
		return &RequestError{Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return &RequestError{Err: fmt.Errorf("encode request body: %w", mErr)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &RequestError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: raw}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Err: fmt.Errorf("decode response body: %w", err)}
	}
	return nil
}

func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse request path: %w", err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("request path must be relative: %q", path)
	}
	return c.base.ResolveReference(ref).String(), nil
}
