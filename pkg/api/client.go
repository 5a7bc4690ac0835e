package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxErrorBody = 1 << 20

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (timeouts, proxies, transports).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout sets the timeout on the client's own HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			clone := *c.http
			clone.Timeout = timeout
			c.http = &clone
		}
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDs overrides how X-Request-ID values are generated.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// Client calls the marketplace API.
type Client struct {
	base      *url.URL
	http      *http.Client
	token     string
	logger    *zap.Logger
	requestID func() string
}

// New builds a client rooted at baseURL (for example
// "https://shop.example.com/api/v1/").
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, ErrBaseURL
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURL, trimmed)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:      base,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    zap.NewNop(),
		requestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// request issues one call. body may be nil; out may be nil to discard the
// response. A non-2xx status returns *Error with unmapped paths.
func (c *Client) request(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("api: parse path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	requestID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger := c.logger.With(
		zap.String("method", method),
		zap.String("url", target.String()),
		zap.String("request_id", requestID),
	)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("api request failed", zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, target.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug("api response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Status:    resp.StatusCode,
			RequestID: requestID,
			Fields:    FlattenErrorBody(data),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, target.Path, err)
	}
	return nil
}

// resolve maps a raw *Error's flattened paths onto known form paths.
func resolve(err error, known []string, remap func(string) string) error {
	apiErr, ok := AsError(err)
	if !ok {
		return err
	}
	mapping := MapErrors(known, apiErr.Fields)
	fields := make(map[string][]string, len(mapping.Fields))
	for path, messages := range mapping.Fields {
		if remap != nil {
			path = remap(path)
		}
		fields[path] = append(fields[path], messages...)
	}
	if len(fields) == 0 {
		fields = nil
	}
	return &Error{
		Status:    apiErr.Status,
		RequestID: apiErr.RequestID,
		Fields:    fields,
		Form:      mapping.Form,
	}
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("api: encode body: %w", err)
	}
	return bytes.NewReader(data), nil
}
