// ABOUTME: Unified error classifier for retry decisions
// ABOUTME: Covers context errors, AppContextError flags and network conditions
package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
)

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation is never retryable (caller initiated).
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr.IsRetryable()
	}

	var opNetErr *net.OpError
	if errors.As(err, &opNetErr) {
		if opNetErr.Err != nil {
			if errno, ok := opNetErr.Err.(syscall.Errno); ok {
				switch errno {
				case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT:
					return true
				}
			}
		}
		if opNetErr.Timeout() {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// IsRetryableHTTPStatus determines if an HTTP status code indicates a
// retryable condition.
func IsRetryableHTTPStatus(status int) bool {
	switch {
	case status >= 500 && status <= 599:
		return true
	case status == http.StatusRequestTimeout:
		return true
	case status == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}
