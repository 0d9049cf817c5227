// Package http provides HTTP client infrastructure for captions backend
// interactions: typed errors, optional bounded retry, per-host pacing,
// and session/cookie handling.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Client wraps an HTTP client with typed error mapping, optional retry,
// and outbound pacing. Each Client owns its session state; independent
// Clients share nothing.
type Client struct {
	base        *http.Client
	config      *Config
	rateLimiter *RateLimiter
	session     *Session
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// Retry configuration. The default is a single attempt.
	Retry RetryConfig

	// Session configuration (user agent, accept-language, cookies)
	Session SessionConfig

	// Rate limiter configuration
	RateLimit RateLimitConfig

	// Connection pool configuration
	Transport TransportConfig
}

// RetryConfig bounds retry behavior for transient failures. With
// MaxAttempts of 1 (the default) every request is a single attempt and
// failures surface immediately.
type RetryConfig struct {
	// MaxAttempts is the total number of tries per request, including
	// the first. Values below 1 are treated as 1.
	MaxAttempts int
	// InitialInterval is the first retry delay.
	InitialInterval time.Duration
	// MaxInterval caps the exponential retry delay.
	MaxInterval time.Duration
}

// DefaultRetryConfig returns single-attempt defaults with sane backoff
// intervals for callers that opt in to more attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     1,
		InitialInterval: 1 * time.Second,
		MaxInterval:     10 * time.Second,
	}
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	// Default: 20
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	// Default: 10
	MaxIdleConnsPerHost int

	// MaxConnsPerHost is the maximum concurrent connections per host.
	// Default: 20
	MaxConnsPerHost int

	// IdleConnTimeout is the maximum amount of time an idle connection can remain open.
	// Default: 90 seconds
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 forces HTTP/2 for connections to servers that don't explicitly support it.
	// Default: true
	ForceAttemptHTTP2 bool
}

// DefaultTransportConfig returns sensible defaults for HTTP transport configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// DefaultConfig returns sensible defaults for HTTP client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:   30 * time.Second,
		Retry:     DefaultRetryConfig(),
		Session:   DefaultSessionConfig(),
		RateLimit: DefaultRateLimitConfig(),
		Transport: DefaultTransportConfig(),
	}
}

// New creates a new HTTP client with the given configuration.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	session, err := NewSession(cfg.Session)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.Transport.MaxConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
	}

	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		Jar:       session.Jar(),
	}

	return &Client{
		base:        base,
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimit),
		session:     session,
	}, nil
}

// Response represents an HTTP response with status code and body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil)
}

// Session returns the client's session for cookie and header updates.
func (c *Client) Session() *Session {
	return c.session
}

// Do performs an HTTP request. Rate-limit responses (429, 503) and bot
// detection (403) surface as *RateLimitError, other non-2xx statuses as
// *HTTPError. When Retry.MaxAttempts is above 1, transient failures are
// retried with exponential backoff; terminal statuses are not.
func (c *Client) Do(ctx context.Context, method, urlStr string, body io.Reader) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	operation := func() (*Response, error) {
		resp, err := c.attempt(ctx, method, urlStr, body)
		if err != nil {
			return nil, classifyForRetry(err)
		}
		return resp, nil
	}

	if c.config.Retry.MaxAttempts <= 1 {
		resp, err := operation()
		if err != nil {
			return nil, unwrapPermanent(err)
		}
		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.Retry.InitialInterval
	bo.MaxInterval = c.config.Retry.MaxInterval

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.config.Retry.MaxAttempts)))
	if err != nil {
		return nil, unwrapPermanent(err)
	}
	return resp, nil
}

// attempt performs a single request and maps the response to a
// *Response or a typed error.
func (c *Client) attempt(ctx context.Context, method, urlStr string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.session.Headers() {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	// Rate limiting (429/503) or anti-bot protection (403)
	if resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusServiceUnavailable ||
		resp.StatusCode == http.StatusForbidden {
		return nil, &RateLimitError{
			StatusCode:     resp.StatusCode,
			RetryAfter:     parseRetryAfter(resp.Header),
			IsBotDetection: resp.StatusCode == http.StatusForbidden,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       bodyBytes,
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// classifyForRetry marks errors that retrying cannot fix as permanent.
// Client errors other than 429/403 are terminal; transport failures,
// 5xx responses, and rate limiting remain retryable.
func classifyForRetry(err error) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < 500 {
		return backoff.Permanent(err)
	}
	return err
}

// unwrapPermanent strips the backoff permanent marker so callers see
// the original typed error.
func unwrapPermanent(err error) error {
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Unwrap()
	}
	return err
}

// parseRetryAfter extracts the Retry-After header value.
// Returns the number of seconds to wait, or 0 if not present.
func parseRetryAfter(header http.Header) time.Duration {
	retryAfter := header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	// Try parsing as seconds (integer)
	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP date
	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return 0
}

// Close closes the HTTP client connections and releases all resources.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}
