package driver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-estimator/config"
)

func testHTTPConfig() config.HTTPConfig {
	return config.HTTPConfig{
		Timeout:             5 * time.Second,
		UserAgent:           "rank-estimator-test/1.0",
		MaxIdleConns:        2,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     time.Second,
	}
}

func TestThrottledClient_Get(t *testing.T) {
	t.Run("should return body and send user agent on success", func(t *testing.T) {
		var gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("hello"))
		}))
		defer server.Close()

		client := NewThrottledClient(testHTTPConfig(), nil)

		body, err := client.Get(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
		assert.Equal(t, "rank-estimator-test/1.0", gotAgent)
	})

	t.Run("should return StatusError with retry-after on 429", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewThrottledClient(testHTTPConfig(), nil)

		_, err := client.Get(context.Background(), server.URL)

		require.Error(t, err)
		statusErr, ok := err.(*StatusError)
		require.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
		assert.Equal(t, 30*time.Second, statusErr.RetryAfter)
	})

	t.Run("should pace requests to a configured host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewThrottledClient(testHTTPConfig(), nil)
		host := server.Listener.Addr().String()
		client.PaceHost(host, 50*time.Millisecond)

		start := time.Now()
		for i := 0; i < 3; i++ {
			_, err := client.Get(context.Background(), server.URL)
			require.NoError(t, err)
		}

		// First request is immediate, the next two wait out the interval.
		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"should parse seconds form", "120", 120 * time.Second},
		{"should return zero for empty header", "", 0},
		{"should return zero for garbage", "soon", 0},
		{"should return zero for negative seconds", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRetryAfter(tt.header))
		})
	}
}
