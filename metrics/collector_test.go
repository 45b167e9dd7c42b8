// ABOUTME: This file tests the per-source metrics collector
// ABOUTME: Covers accumulation, aggregation, exports and idle cleanup
package metrics

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-estimator/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func enabledCollector(t *testing.T) *Collector {
	t.Helper()
	collector, err := NewCollector(config.MetricsConfig{
		Enabled: true,
		Port:    0,
		Path:    "/metrics",
	}, testLogger())
	require.NoError(t, err)
	return collector
}

func TestCollector_RecordSourceRequest(t *testing.T) {
	t.Run("should accumulate per-source counters", func(t *testing.T) {
		collector := enabledCollector(t)

		collector.RecordSourceRequest("wikipedia", true, 120*time.Millisecond)
		collector.RecordSourceRequest("wikipedia", true, 80*time.Millisecond)
		collector.RecordSourceRequest("wikipedia", false, 40*time.Millisecond)

		entry := collector.GetSourceMetrics("wikipedia")
		require.NotNil(t, entry)
		assert.Equal(t, int64(3), entry.TotalRequests)
		assert.Equal(t, int64(2), entry.SuccessCount)
		assert.Equal(t, int64(1), entry.FailureCount)
		assert.InDelta(t, 2.0/3.0, entry.SuccessRate, 1e-9)
		assert.Equal(t, 40*time.Millisecond, entry.MinResponseTime)
		assert.Equal(t, 120*time.Millisecond, entry.MaxResponseTime)
		assert.Equal(t, 80*time.Millisecond, entry.AvgResponseTime)
	})

	t.Run("should return nil for unseen sources", func(t *testing.T) {
		collector := enabledCollector(t)
		assert.Nil(t, collector.GetSourceMetrics("webometrics"))
	})

	t.Run("should be inert when disabled", func(t *testing.T) {
		collector, err := NewCollector(config.MetricsConfig{Enabled: false}, testLogger())
		require.NoError(t, err)

		collector.RecordSourceRequest("wikipedia", true, time.Millisecond)

		assert.Nil(t, collector.GetSourceMetrics("wikipedia"))
	})
}

func TestCollector_Aggregate(t *testing.T) {
	t.Run("should fold all sources into the aggregate", func(t *testing.T) {
		collector := enabledCollector(t)

		collector.RecordSourceRequest("wikipedia", true, 100*time.Millisecond)
		collector.RecordSourceRequest("search", false, 300*time.Millisecond)

		aggregate := collector.GetAggregateMetrics()
		assert.Equal(t, int64(2), aggregate.TotalRequests)
		assert.Equal(t, int64(1), aggregate.SuccessCount)
		assert.Equal(t, int64(1), aggregate.FailureCount)
		assert.Equal(t, 2, aggregate.ActiveSources)
		assert.Equal(t, 200*time.Millisecond, aggregate.AvgResponseTime)
	})
}

func TestCollector_Export(t *testing.T) {
	t.Run("should export well-formed JSON", func(t *testing.T) {
		collector := enabledCollector(t)
		collector.RecordSourceRequest("wikipedia", true, 50*time.Millisecond)

		data, err := collector.ExportJSON()
		require.NoError(t, err)

		var export ExportData
		require.NoError(t, json.Unmarshal(data, &export))
		assert.Equal(t, "rank-estimator", export.ServiceName)
		require.Contains(t, export.SourceMetrics, "wikipedia")
		assert.Equal(t, int64(1), export.SourceMetrics["wikipedia"].TotalRequests)
	})

	t.Run("should export labeled Prometheus lines", func(t *testing.T) {
		collector := enabledCollector(t)
		collector.RecordSourceRequest("search", true, 50*time.Millisecond)

		text := collector.ExportPrometheus()

		assert.Contains(t, text, `rank_estimator_source_requests_total{source="search"} 1`)
		assert.Contains(t, text, `rank_estimator_source_requests_total{source="_aggregate"} 1`)
		assert.Contains(t, text, "# TYPE rank_estimator_source_success_rate gauge")
	})

	t.Run("should export empty JSON when disabled", func(t *testing.T) {
		collector, err := NewCollector(config.MetricsConfig{Enabled: false}, testLogger())
		require.NoError(t, err)

		data, err := collector.ExportJSON()
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
		assert.Empty(t, collector.ExportPrometheus())
	})
}

func TestCollector_Cleanup(t *testing.T) {
	t.Run("should drop sources idle past the threshold", func(t *testing.T) {
		collector := enabledCollector(t)
		collector.RecordSourceRequest("wikipedia", true, time.Millisecond)
		collector.RecordSourceRequest("search", true, time.Millisecond)

		collector.mu.Lock()
		collector.metrics["wikipedia"].LastRequestTime = time.Now().Add(-25 * time.Hour)
		collector.mu.Unlock()

		collector.Cleanup()

		assert.Nil(t, collector.GetSourceMetrics("wikipedia"))
		assert.NotNil(t, collector.GetSourceMetrics("search"))
	})
}

func TestCollector_Reset(t *testing.T) {
	t.Run("should clear every source", func(t *testing.T) {
		collector := enabledCollector(t)
		collector.RecordSourceRequest("wikipedia", true, time.Millisecond)

		collector.Reset()

		assert.Nil(t, collector.GetSourceMetrics("wikipedia"))
		assert.Zero(t, collector.GetAggregateMetrics().TotalRequests)
	})
}

func TestNewCollector(t *testing.T) {
	t.Run("should reject an out-of-range port", func(t *testing.T) {
		_, err := NewCollector(config.MetricsConfig{Enabled: true, Port: 70000}, testLogger())
		assert.Error(t, err)
	})

	t.Run("should default the path", func(t *testing.T) {
		collector, err := NewCollector(config.MetricsConfig{Enabled: true, Port: 0}, testLogger())
		require.NoError(t, err)
		assert.Equal(t, "/metrics", collector.cfg.Path)
	})
}
