package errors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppContextError_HTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"should map validation errors to 400", "VALIDATION_ERROR", http.StatusBadRequest},
		{"should map unauthorized errors to 401", "UNAUTHORIZED_ERROR", http.StatusUnauthorized},
		{"should map not found errors to 404", "NOT_FOUND_ERROR", http.StatusNotFound},
		{"should map rate limit errors to 429", "RATE_LIMIT_ERROR", http.StatusTooManyRequests},
		{"should map external API errors to 502", "EXTERNAL_API_ERROR", http.StatusBadGateway},
		{"should map timeout errors to 504", "TIMEOUT_ERROR", http.StatusGatewayTimeout},
		{"should map database errors to 500", "DATABASE_ERROR", http.StatusInternalServerError},
		{"should map unknown codes to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAppContextError(tt.code, "msg", "service", "test", "op", nil, nil)
			assert.Equal(t, tt.want, err.HTTPStatusCode())
		})
	}
}

func TestAppContextError_SafeMessage(t *testing.T) {
	t.Run("should pass validation messages through", func(t *testing.T) {
		err := NewValidationContextError("institution name is required", "handler", "ranking", "Rank", nil)
		assert.Equal(t, "institution name is required", err.SafeMessage())
	})

	t.Run("should hide internal details", func(t *testing.T) {
		cause := errors.New("pq: connection refused on 10.0.0.3")
		err := NewDatabaseContextError("insert failed", "repository", "result", "Save", cause, nil)
		assert.NotContains(t, err.SafeMessage(), "10.0.0.3")
		assert.NotContains(t, err.SafeMessage(), "insert failed")
	})
}

func TestAppContextError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalContextError("wrapped", "service", "estimator", "Estimate", cause, nil)
	assert.ErrorIs(t, err, cause)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"should not retry nil", nil, false},
		{"should not retry cancellation", context.Canceled, false},
		{"should retry deadline exceeded", context.DeadlineExceeded, true},
		{"should retry rate limit errors", NewRateLimitContextError("limited", "service", "fetcher", "Fetch", nil, nil), true},
		{"should not retry validation errors", NewValidationContextError("bad", "handler", "ranking", "Rank", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	assert.True(t, IsRetryableHTTPStatus(500))
	assert.True(t, IsRetryableHTTPStatus(503))
	assert.True(t, IsRetryableHTTPStatus(429))
	assert.True(t, IsRetryableHTTPStatus(408))
	assert.False(t, IsRetryableHTTPStatus(404))
	assert.False(t, IsRetryableHTTPStatus(200))
}
