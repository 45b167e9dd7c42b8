// ABOUTME: Tests for OpenTelemetry configuration and the disabled no-op path
// ABOUTME: Exporter wiring itself needs a collector and is not covered here
package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("should fall back to defaults", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
		t.Setenv("OTEL_ENABLED", "")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "")

		cfg := ConfigFromEnv()

		assert.Equal(t, "rank-estimator", cfg.ServiceName)
		assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 0.1, cfg.SampleRatio)
	})

	t.Run("should pick up the environment overrides", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "rank-estimator-staging")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://otel-collector:4318")
		t.Setenv("OTEL_ENABLED", "false")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "0.5")

		cfg := ConfigFromEnv()

		assert.Equal(t, "rank-estimator-staging", cfg.ServiceName)
		assert.Equal(t, "http://otel-collector:4318", cfg.OTLPEndpoint)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 0.5, cfg.SampleRatio)
	})

	t.Run("should ignore an out-of-range sample ratio", func(t *testing.T) {
		for _, raw := range []string{"1.5", "-0.2", "lots"} {
			t.Setenv("OTEL_TRACE_SAMPLE_RATIO", raw)
			assert.Equal(t, 0.1, ConfigFromEnv().SampleRatio, raw)
		}
	})
}

func TestInitProvider_Disabled(t *testing.T) {
	t.Run("should hand back a working no-op shutdown", func(t *testing.T) {
		cfg := Config{ServiceName: "rank-estimator", Enabled: false}

		shutdown, err := InitProvider(context.Background(), cfg)
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	})
}
