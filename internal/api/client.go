package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pmarket/pm/pkg/pmarket"
)

// DefaultTimeout bounds every HTTP round-trip unless overridden with WithTimeout.
const DefaultTimeout = 10 * time.Second

// SessionCookie is the name of the cookie carrying the session credential.
const SessionCookie = "SESSION-TOKEN"

// Client handles HTTP requests to a prediction market server.
type Client struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a new API client with the given base URL and session token.
// The token may be empty; authenticated requests still carry the cookie and
// the server decides whether to reject them.
func NewClient(baseURL, authToken string, opts ...Option) *Client {
	c := &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		AuthToken: authToken,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// Get performs an unauthenticated GET request to the specified path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, false)
}

// AuthGet performs a GET request carrying the session cookie.
func (c *Client) AuthGet(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, true)
}

// Post performs an unauthenticated POST request with the given body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, body, false)
}

// AuthPost performs a POST request carrying the session cookie.
func (c *Client) AuthPost(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, body, true)
}

// postJSON encodes v and posts it, optionally with the session cookie.
func (c *Client) postJSON(ctx context.Context, path string, v any, authenticated bool) (*http.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), authenticated)
}

// do performs a single HTTP request. There are no retries: a failed round-trip
// is reported as a *pmarket.TransportError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, authenticated bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		// Sent even when the token is empty.
		req.Header.Set("Cookie", SessionCookie+"="+c.AuthToken)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, &pmarket.TransportError{Err: err}
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Bool("authenticated", authenticated),
		zap.Duration("elapsed", time.Since(start)))

	return resp, nil
}

// getJSON issues a GET and decodes a successful response body into target.
func (c *Client) getJSON(ctx context.Context, path string, authenticated bool, target any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, authenticated)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := pmarket.CheckResponse(resp); err != nil {
		return err
	}

	return pmarket.DecodeJSON(resp, target)
}

// discard drains and closes a response body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
