package http

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
)

// Session holds per-client browsing state: a cookie jar plus default
// headers applied to every request. Captions backends key consent and
// bot-check behavior off these, so each Client owns one Session and
// nothing is shared process-wide.
type Session struct {
	jar    http.CookieJar
	mu     sync.RWMutex
	config SessionConfig
}

// SessionConfig configures session behavior.
type SessionConfig struct {
	// UserAgent for HTTP requests
	UserAgent string

	// AcceptLanguage is sent as the Accept-Language header. The watch
	// page is served per-locale; pinning it keeps catalog parsing stable.
	AcceptLanguage string

	// RefererURL to use in requests (helps with YouTube)
	RefererURL string

	// Headers are additional headers to include in all requests
	Headers map[string]string
}

// DefaultSessionConfig returns sensible defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		AcceptLanguage: "en-US",
		RefererURL:     "https://www.youtube.com",
		Headers:        make(map[string]string),
	}
}

// NewSession creates a session with a fresh cookie jar.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultSessionConfig().UserAgent
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Session{jar: jar, config: cfg}, nil
}

// Headers returns the headers to add to requests.
func (s *Session) Headers() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	headers := make(map[string]string, len(s.config.Headers)+3)
	for k, v := range s.config.Headers {
		headers[k] = v
	}
	headers["User-Agent"] = s.config.UserAgent
	if s.config.AcceptLanguage != "" {
		headers["Accept-Language"] = s.config.AcceptLanguage
	}
	if s.config.RefererURL != "" {
		headers["Referer"] = s.config.RefererURL
	}
	return headers
}

// SetHeader adds a header to be included in all requests.
func (s *Session) SetHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Headers[key] = value
}

// SetCookie stores a cookie in the session jar for the given URL.
func (s *Session) SetCookie(rawURL string, cookie *http.Cookie) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse cookie URL: %w", err)
	}
	s.jar.SetCookies(u, []*http.Cookie{cookie})
	return nil
}

// Cookies returns the cookies the jar would send to the given URL.
func (s *Session) Cookies(rawURL string) []*http.Cookie {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return s.jar.Cookies(u)
}

// Jar exposes the underlying cookie jar for http.Client wiring.
func (s *Session) Jar() http.CookieJar {
	return s.jar
}
