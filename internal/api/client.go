// pattern: Imperative Shell

// Package api is the REST gateway to the contractor backend. All
// calls go through a single execute path that carries the access
// token, tags requests with a correlation id, and performs the
// one-shot refresh-and-retry on 403.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"fiberdesk/internal/logging"
)

// Client talks to the contractor backend. Safe for use from bubbletea
// command goroutines.
type Client struct {
	http   *resty.Client
	logger *logging.ScopedLogger

	mu          sync.RWMutex
	accessToken string
}

// New creates a Client against the given base URL. The resty client
// keeps a cookie jar, which carries the refresh cookie across calls.
func New(baseURL string, timeout time.Duration, logger *logging.ScopedLogger) *Client {
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{http: hc, logger: logger}

	hc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		c.mu.RLock()
		if c.accessToken != "" {
			req.SetAuthToken(c.accessToken)
		}
		c.mu.RUnlock()
		return nil
	})

	return c
}

// SetBaseURL repoints the client, used by config hot reload.
func (c *Client) SetBaseURL(baseURL string) {
	c.http.SetBaseURL(baseURL)
}

// HasSession reports whether an access token is held.
func (c *Client) HasSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) clearToken() {
	c.setToken("")
}

// send performs one HTTP exchange. Transport failures come back as
// errors; server errors come back in the response.
func (c *Client) send(ctx context.Context, method, path string, body, result any) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	return req.Execute(method, path)
}

// do executes a request with the session semantics every endpoint
// shares: a 403 triggers one refresh followed by one retry of the
// original request. The retry path never recurses, so a second
// 401/403 expires the session instead of looping.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	resp, err := c.send(ctx, method, path, body, result)
	if err != nil {
		c.logger.Warn("request transport failure", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	}

	if resp.StatusCode() != http.StatusForbidden {
		return responseError(resp)
	}

	c.logger.Debug("access token rejected, refreshing", "method", method, "path", path)
	if err := c.Refresh(ctx); err != nil {
		c.clearToken()
		return ErrSessionExpired
	}

	resp, err = c.send(ctx, method, path, body, result)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerNotResponding, err)
	}
	if s := resp.StatusCode(); s == http.StatusUnauthorized || s == http.StatusForbidden {
		c.clearToken()
		return ErrSessionExpired
	}
	return responseError(resp)
}

// responseError converts a non-2xx response to *Error, preferring the
// backend's own message over the generic per-status text.
func responseError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	msg := ""
	if eb, ok := resp.Error().(*errorBody); ok && eb != nil {
		msg = eb.Message
	}
	return serverError(resp.StatusCode(), msg)
}
