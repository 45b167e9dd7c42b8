// ABOUTME: This file implements exponential backoff retry with jitter
// ABOUTME: Used for backend connections that may come up after the service
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Config tunes a Retrier. BackoffFactor multiplies the delay between
// attempts; JitterFactor spreads delays to avoid thundering herds.
type Config struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// DefaultConfig is suitable for waiting on a backend during startup.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   5,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.2,
	}
}

// Classifier reports whether an error is worth retrying. A nil classifier
// retries every error.
type Classifier func(error) bool

// Retrier runs operations with exponential backoff.
type Retrier struct {
	config      Config
	isRetryable Classifier
	logger      *slog.Logger
}

// NewRetrier creates a retrier with the given config and classifier.
func NewRetrier(config Config, classifier Classifier, logger *slog.Logger) *Retrier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrier{
		config:      config,
		isRetryable: classifier,
		logger:      logger,
	}
}

// Do runs the operation until it succeeds, the attempts are exhausted, the
// error is classified non-retryable, or the context is cancelled.
func (r *Retrier) Do(ctx context.Context, name string, operation func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Info("operation succeeded after retry",
					"operation", name, "attempt", attempt)
			}
			return nil
		}

		retryable := r.isRetryable == nil || r.isRetryable(lastErr)
		if attempt == r.config.MaxAttempts || !retryable {
			break
		}

		delay := r.delay(attempt)
		r.logger.Warn("operation failed, backing off",
			"operation", name,
			"attempt", attempt,
			"delay", delay,
			"error", lastErr)

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry of %s cancelled: %w", name, ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, r.config.MaxAttempts, lastErr)
}

func (r *Retrier) delay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	delay *= 1.0 + (rand.Float64()-0.5)*r.config.JitterFactor
	return time.Duration(delay)
}
