// Package api is the console's single point of egress to the POS backend.
//
// A Client attaches the stored session to every request and turns backend
// failures into errors callers can match: ErrSessionExpired (401, the
// session is cleared before returning), ErrNotFound (404) and
// ErrUnreachable (no response). The client never navigates; whoever owns
// navigation reacts to ErrSessionExpired.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"posadmin/models"
	"posadmin/store"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 15 * time.Second

const maxBodySize = 4 << 20

// Client wraps outbound calls to the backend.
type Client struct {
	baseURL string
	store   store.Store
	http    *http.Client
	logger  *log.Logger
	timeout time.Duration
	extra   []Middleware

	mu      sync.RWMutex
	headers http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMiddleware appends middlewares; they run inside the built-in ones.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) { c.extra = append(c.extra, mws...) }
}

// WithDefaultHeader sets a header sent with every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// New creates a Client for baseURL that reads the session from s.
func New(baseURL string, s store.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   s,
		logger:  log.Default(),
		timeout: DefaultTimeout,
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}

	mws := append([]Middleware{RequestID(), LogRequests(c.logger), Bearer(s)}, c.extra...)
	c.http = &http.Client{Transport: Chain(http.DefaultTransport, mws...)}

	return c
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DefaultHeader returns the value of a default header.
func (c *Client) DefaultHeader(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Get(key)
}

// Get issues a GET for path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with body encoded as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rdr)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(req, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(req, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// responseError runs the response-side handling for a non-2xx status.
func (c *Client) responseError(req *http.Request, path string, status int, body []byte) error {
	apiErr := &APIError{
		Status: status,
		Method: req.Method,
		Path:   path,
		URL:    req.URL.String(),
		Body:   body,
	}
	var payload models.ErrorPayload
	if json.Unmarshal(body, &payload) == nil && (payload.Message != "" || payload.Status != "") {
		apiErr.Payload = &payload
	}

	switch status {
	case http.StatusUnauthorized:
		c.expireSession()
	case http.StatusNotFound:
		c.logger.Printf("API endpoint not found: %s", path)
		c.logger.Printf("Full URL: %s", apiErr.URL)
		c.logger.Printf("Full error: %s", strings.TrimSpace(string(body)))
	}
	return apiErr
}

// expireSession clears the stored session and drops any default
// Authorization header. Safe to run concurrently and repeatedly.
func (c *Client) expireSession() {
	if err := c.store.Clear(); err != nil {
		c.logger.Printf("Error clearing expired session: %v", err)
	}
	c.mu.Lock()
	c.headers.Del("Authorization")
	c.mu.Unlock()
}

func (c *Client) transportError(req *http.Request, err error) error {
	if !IsConnectivityError(err) {
		return err
	}
	c.logger.Printf("Backend server is not reachable. Please ensure the backend is running.")
	c.logger.Printf("API Base URL: %s", c.baseURL)
	c.logger.Printf("Requested URL: %s", req.URL)
	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}
