// ABOUTME: This file collects per-source fetch metrics for monitoring
// ABOUTME: Exposes JSON and Prometheus exports on a dedicated HTTP port
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"rank-estimator/config"
)

// SourceMetrics tracks fetch statistics for one external data source.
type SourceMetrics struct {
	Source            string        `json:"source"`
	TotalRequests     int64         `json:"total_requests"`
	SuccessCount      int64         `json:"success_count"`
	FailureCount      int64         `json:"failure_count"`
	SuccessRate       float64       `json:"success_rate"`
	AvgResponseTime   time.Duration `json:"avg_response_time_ms"`
	MinResponseTime   time.Duration `json:"min_response_time_ms"`
	MaxResponseTime   time.Duration `json:"max_response_time_ms"`
	LastRequestTime   time.Time     `json:"last_request_time"`
	FirstRequestTime  time.Time     `json:"first_request_time"`
	TotalResponseTime time.Duration `json:"-"`
}

// AggregateMetrics provides service-wide fetch statistics.
type AggregateMetrics struct {
	TotalRequests   int64         `json:"total_requests"`
	SuccessCount    int64         `json:"success_count"`
	FailureCount    int64         `json:"failure_count"`
	SuccessRate     float64       `json:"success_rate"`
	AvgResponseTime time.Duration `json:"avg_response_time_ms"`
	ActiveSources   int           `json:"active_sources"`
	CollectionTime  time.Time     `json:"collection_time"`
}

// ExportData contains all metrics for export.
type ExportData struct {
	Aggregate     *AggregateMetrics         `json:"aggregate"`
	SourceMetrics map[string]*SourceMetrics `json:"sources"`
	ExportTime    time.Time                 `json:"export_time"`
	ServiceName   string                    `json:"service_name"`
}

// Collector manages metric collection and aggregation. The zero port is
// valid for tests; Start binds the server only when the collector is enabled.
type Collector struct {
	enabled bool
	cfg     config.MetricsConfig
	logger  *slog.Logger

	mu      sync.RWMutex
	metrics map[string]*SourceMetrics

	serverMu sync.Mutex
	server   *http.Server
}

// NewCollector creates a metrics collector from the metrics config block.
func NewCollector(cfg config.MetricsConfig, logger *slog.Logger) (*Collector, error) {
	if cfg.Enabled && (cfg.Port < 0 || cfg.Port > 65535) {
		return nil, errors.New("invalid metrics port")
	}
	if cfg.Path == "" {
		cfg.Path = "/metrics"
	}
	if logger == nil {
		logger = slog.Default()
	}

	collector := &Collector{
		enabled: cfg.Enabled,
		cfg:     cfg,
		logger:  logger,
		metrics: make(map[string]*SourceMetrics),
	}

	logger.Info("metrics collector initialized",
		"enabled", cfg.Enabled,
		"port", cfg.Port,
		"path", cfg.Path)

	return collector, nil
}

// RecordSourceRequest records one external fetch attempt. The aggregator
// calls this once per fetcher invocation.
func (c *Collector) RecordSourceRequest(source string, success bool, duration time.Duration) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	entry, exists := c.metrics[source]
	if !exists {
		entry = &SourceMetrics{
			Source:           source,
			FirstRequestTime: now,
			MinResponseTime:  duration,
			MaxResponseTime:  duration,
		}
		c.metrics[source] = entry
	}

	entry.TotalRequests++
	entry.LastRequestTime = now
	entry.TotalResponseTime += duration

	if success {
		entry.SuccessCount++
	} else {
		entry.FailureCount++
	}

	if duration < entry.MinResponseTime {
		entry.MinResponseTime = duration
	}
	if duration > entry.MaxResponseTime {
		entry.MaxResponseTime = duration
	}

	entry.SuccessRate = float64(entry.SuccessCount) / float64(entry.TotalRequests)
	entry.AvgResponseTime = time.Duration(entry.TotalResponseTime.Nanoseconds() / entry.TotalRequests)
}

// GetSourceMetrics returns a copy of one source's metrics, or nil when the
// source has not been seen.
func (c *Collector) GetSourceMetrics(source string) *SourceMetrics {
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.metrics[source]
	if !exists {
		return nil
	}

	copied := *entry
	return &copied
}

// GetAggregateMetrics returns service-wide aggregate metrics.
func (c *Collector) GetAggregateMetrics() *AggregateMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.aggregateLocked()
}

func (c *Collector) aggregateLocked() *AggregateMetrics {
	aggregate := &AggregateMetrics{
		CollectionTime: time.Now(),
		ActiveSources:  len(c.metrics),
	}

	var totalResponseTime time.Duration
	for _, entry := range c.metrics {
		aggregate.TotalRequests += entry.TotalRequests
		aggregate.SuccessCount += entry.SuccessCount
		aggregate.FailureCount += entry.FailureCount
		totalResponseTime += entry.TotalResponseTime
	}

	if aggregate.TotalRequests > 0 {
		aggregate.SuccessRate = float64(aggregate.SuccessCount) / float64(aggregate.TotalRequests)
		aggregate.AvgResponseTime = time.Duration(totalResponseTime.Nanoseconds() / aggregate.TotalRequests)
	}

	return aggregate
}

// ExportJSON exports all metrics in JSON format.
func (c *Collector) ExportJSON() ([]byte, error) {
	if !c.enabled {
		return []byte("{}"), nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	exportData := &ExportData{
		Aggregate:     c.aggregateLocked(),
		SourceMetrics: make(map[string]*SourceMetrics, len(c.metrics)),
		ExportTime:    time.Now(),
		ServiceName:   "rank-estimator",
	}

	for source, entry := range c.metrics {
		copied := *entry
		exportData.SourceMetrics[source] = &copied
	}

	return json.MarshalIndent(exportData, "", "  ")
}

// ExportPrometheus exports metrics in Prometheus text format.
func (c *Collector) ExportPrometheus() string {
	if !c.enabled {
		return ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var builder strings.Builder

	builder.WriteString("# HELP rank_estimator_source_requests_total Total fetch attempts per source\n")
	builder.WriteString("# TYPE rank_estimator_source_requests_total counter\n")
	builder.WriteString("# HELP rank_estimator_source_success_total Successful fetch attempts per source\n")
	builder.WriteString("# TYPE rank_estimator_source_success_total counter\n")
	builder.WriteString("# HELP rank_estimator_source_failure_total Failed fetch attempts per source\n")
	builder.WriteString("# TYPE rank_estimator_source_failure_total counter\n")
	builder.WriteString("# HELP rank_estimator_source_response_seconds Average fetch duration per source\n")
	builder.WriteString("# TYPE rank_estimator_source_response_seconds gauge\n")
	builder.WriteString("# HELP rank_estimator_source_success_rate Ratio of successful fetch attempts\n")
	builder.WriteString("# TYPE rank_estimator_source_success_rate gauge\n")

	sources := make([]string, 0, len(c.metrics))
	for source := range c.metrics {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		entry := c.metrics[source]
		builder.WriteString(fmt.Sprintf("rank_estimator_source_requests_total{source=%q} %d\n",
			source, entry.TotalRequests))
		builder.WriteString(fmt.Sprintf("rank_estimator_source_success_total{source=%q} %d\n",
			source, entry.SuccessCount))
		builder.WriteString(fmt.Sprintf("rank_estimator_source_failure_total{source=%q} %d\n",
			source, entry.FailureCount))
		builder.WriteString(fmt.Sprintf("rank_estimator_source_response_seconds{source=%q} %.6f\n",
			source, entry.AvgResponseTime.Seconds()))
		builder.WriteString(fmt.Sprintf("rank_estimator_source_success_rate{source=%q} %.4f\n",
			source, entry.SuccessRate))
	}

	aggregate := c.aggregateLocked()
	builder.WriteString(fmt.Sprintf("rank_estimator_source_requests_total{source=\"_aggregate\"} %d\n",
		aggregate.TotalRequests))
	builder.WriteString(fmt.Sprintf("rank_estimator_source_success_total{source=\"_aggregate\"} %d\n",
		aggregate.SuccessCount))
	builder.WriteString(fmt.Sprintf("rank_estimator_source_failure_total{source=\"_aggregate\"} %d\n",
		aggregate.FailureCount))
	builder.WriteString(fmt.Sprintf("rank_estimator_source_response_seconds{source=\"_aggregate\"} %.6f\n",
		aggregate.AvgResponseTime.Seconds()))
	builder.WriteString(fmt.Sprintf("rank_estimator_source_success_rate{source=\"_aggregate\"} %.4f\n",
		aggregate.SuccessRate))

	return builder.String()
}

// Reset clears all collected metrics.
func (c *Collector) Reset() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics = make(map[string]*SourceMetrics)
	c.logger.Info("metrics reset completed")
}

// idleThreshold bounds how long an unused source entry survives.
const idleThreshold = 24 * time.Hour

// Cleanup removes metrics for sources idle longer than the threshold.
func (c *Collector) Cleanup() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for source, entry := range c.metrics {
		if now.Sub(entry.LastRequestTime) > idleThreshold {
			delete(c.metrics, source)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Info("metrics cleanup completed",
			"removed_sources", removed,
			"remaining_sources", len(c.metrics))
	}
}

// Start starts the HTTP metrics server on its dedicated port.
func (c *Collector) Start(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	c.serverMu.Lock()
	defer c.serverMu.Unlock()

	if c.server != nil {
		return errors.New("metrics server already running")
	}

	mux := http.NewServeMux()

	mux.HandleFunc(c.cfg.Path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		jsonData, err := c.ExportJSON()
		if err != nil {
			c.logger.Error("failed to export JSON metrics", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Write(jsonData)
	})

	mux.HandleFunc(c.cfg.Path+"/prometheus", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(c.ExportPrometheus()))
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"rank-estimator-metrics"}`))
	})

	c.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", c.cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: c.cfg.ReadHeaderTimeout,
		ReadTimeout:       c.cfg.ReadTimeout,
		WriteTimeout:      c.cfg.WriteTimeout,
		IdleTimeout:       c.cfg.IdleTimeout,
	}

	go func() {
		c.logger.Info("starting metrics server",
			"port", c.cfg.Port,
			"path", c.cfg.Path)

		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("metrics server failed", "error", err)
		}
	}()

	return nil
}

// Stop stops the HTTP metrics server.
func (c *Collector) Stop(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	c.serverMu.Lock()
	defer c.serverMu.Unlock()

	if c.server == nil {
		return nil
	}

	err := c.server.Shutdown(ctx)
	c.server = nil
	if err != nil {
		c.logger.Error("error stopping metrics server", "error", err)
		return err
	}

	c.logger.Info("metrics server stopped")
	return nil
}
