package http

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces outbound requests per host using token buckets.
// A zero rate disables pacing for a host entirely, which is the
// default: each resolution is a single attempt, and polite pacing is a
// host decision, not engine behavior.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	config   RateLimitConfig
}

// RateLimitConfig defines outbound pacing behavior.
type RateLimitConfig struct {
	// RequestsPerSecond is the token refill rate applied to every host
	// without a custom rate. 0 disables pacing.
	RequestsPerSecond float64
	// Burst is the bucket size. Defaults to 1 when pacing is enabled.
	Burst int
	// CustomRates maps hosts to per-host RPS values, overriding
	// RequestsPerSecond. A 0 value disables pacing for that host.
	CustomRates map[string]float64
}

// DefaultRateLimitConfig returns pacing defaults: disabled.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 0,
		Burst:             1,
		CustomRates:       make(map[string]float64),
	}
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CustomRates == nil {
		cfg.CustomRates = make(map[string]float64)
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the rate limit allows a request to the given URL,
// or the context is done. It returns immediately when pacing is
// disabled for the URL's host.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}
	limiter := rl.getLimiter(urlStr)
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// getLimiter returns the limiter for a URL's host, creating one if
// necessary. Returns nil when the effective rate is 0.
func (rl *RateLimiter) getLimiter(urlStr string) *rate.Limiter {
	host := extractHost(urlStr)
	rps := rl.rpsFor(host)
	if rps == 0 {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limiters[host]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rl.config.Burst)
	rl.limiters[host] = limiter
	return limiter
}

// rpsFor returns the requests per second configured for a host.
func (rl *RateLimiter) rpsFor(host string) float64 {
	if rps, ok := rl.config.CustomRates[host]; ok {
		return rps
	}
	return rl.config.RequestsPerSecond
}

// SetCustomRate sets a custom rate limit for a specific host. The
// host's existing limiter is discarded so the new rate takes effect on
// the next request.
func (rl *RateLimiter) SetCustomRate(host string, rps float64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.config.CustomRates[host] = rps
	delete(rl.limiters, host)
}

// extractHost extracts the host (without port) from a URL string.
func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	host := u.Host
	if idx := strings.IndexByte(host, ':'); idx != -1 {
		host = host[:idx]
	}
	return host
}
