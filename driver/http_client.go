// ABOUTME: This file provides the throttled HTTP client shared by all fetcher drivers
// ABOUTME: Applies per-host politeness pacing and surfaces HTTP 429 as a typed error
package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"rank-estimator/config"
)

// StatusError reports a non-success HTTP status from an external source.
// RetryAfter is populated from the Retry-After header when the source sent
// one; callers treat 429 specially and fall back on everything else.
type StatusError struct {
	Code       int
	URL        string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// ThrottledClient wraps http.Client with a User-Agent, bounded timeout and
// per-host pacing. Hosts without a configured pace are unconstrained; the
// search host is paced so each request waits out the mandatory politeness
// delay regardless of budget state.
type ThrottledClient struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger

	mu     sync.Mutex
	limits map[string]*rate.Limiter
	paced  map[string]rate.Limit
}

// NewThrottledClient creates a client from the HTTP config block.
func NewThrottledClient(cfg config.HTTPConfig, logger *slog.Logger) *ThrottledClient {
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}

	return &ThrottledClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		userAgent: cfg.UserAgent,
		logger:    logger,
		limits:    make(map[string]*rate.Limiter),
		paced:     make(map[string]rate.Limit),
	}
}

// PaceHost installs a minimum interval between requests to the given host.
func (c *ThrottledClient) PaceHost(host string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paced[host] = rate.Every(interval)
	delete(c.limits, host)
}

func (c *ThrottledClient) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, ok := c.limits[host]; ok {
		return limiter
	}
	limit, ok := c.paced[host]
	if !ok {
		return nil
	}
	limiter := rate.NewLimiter(limit, 1)
	c.limits[host] = limiter
	return limiter
}

// Get performs a GET request with pacing and the configured User-Agent. It
// returns the body for 2xx responses and a *StatusError otherwise. The
// caller owns closing nothing; the body is fully read and returned.
func (c *ThrottledClient) Get(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	if limiter := c.limiterFor(parsed.Host); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{
			Code:       resp.StatusCode,
			URL:        rawURL,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
		c.logger.Warn("external request failed",
			"host", parsed.Host,
			"status", resp.StatusCode,
			"duration", time.Since(start))
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("external request completed",
		"host", parsed.Host,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	return body, nil
}

// Responses larger than this are truncated; the fetchers only keep small
// normalized fragments anyway.
const maxResponseBytes = 4 << 20

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
