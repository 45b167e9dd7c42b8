// ABOUTME: This file aggregates source payloads for one institution, cache first
// ABOUTME: Rate-limit denials become advisory notes, never request failures
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rank-estimator/models"
	"rank-estimator/ratelimit"
	"rank-estimator/repository"
)

// SourceMetrics receives one sample per external fetch attempt.
type SourceMetrics interface {
	RecordSourceRequest(source string, success bool, duration time.Duration)
}

// Aggregator implementation.
type aggregator struct {
	cache    repository.PayloadCacheRepository
	fetchers []SourceFetcher
	metrics  SourceMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewAggregator creates the data aggregator. Fetchers run in the order
// given; pass them cheapest first. metrics may be nil.
func NewAggregator(cache repository.PayloadCacheRepository, fetchers []SourceFetcher, metrics SourceMetrics, logger *slog.Logger) Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &aggregator{
		cache:    cache,
		fetchers: fetchers,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// CacheKey builds the case-folded payload cache key for an institution.
func CacheKey(name, country string) string {
	return fmt.Sprintf("%s|%s",
		strings.ToLower(strings.TrimSpace(name)),
		strings.ToLower(strings.TrimSpace(country)))
}

// FetchAll returns the aggregated payload for the institution. Cache hits
// perform no network activity and charge no budget. On a miss, only enabled
// fetchers run; each rate-limit denial is folded into the payload's notes
// and the remaining sources still proceed.
func (a *aggregator) FetchAll(ctx context.Context, name, country string, enablement models.SourceEnablement) (*models.AggregatedPayload, error) {
	key := CacheKey(name, country)

	cached, hit, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.WarnContext(ctx, "cache read failed, fetching fresh", "key", key, "error", err)
	}
	if hit {
		a.logger.DebugContext(ctx, "payload cache hit", "key", key)
		return cached, nil
	}

	payload := &models.AggregatedPayload{
		Institution: name,
		Country:     country,
		FetchedAt:   a.now(),
	}

	for _, fetcher := range a.fetchers {
		source := fetcher.Source()
		if !enablement.Enabled(source) {
			a.logger.DebugContext(ctx, "source disabled, skipping", "source", source)
			continue
		}

		start := a.now()
		contributed, err := fetcher.Fetch(ctx, name, country, payload)
		a.recordMetric(source, err == nil, a.now().Sub(start))

		if err != nil {
			var denial *ratelimit.LimitExceeded
			if errors.As(err, &denial) {
				payload.Notes = append(payload.Notes, models.SourceNote{
					Source:  denial.Source,
					Status:  models.NoteStatusRateLimited,
					ResetAt: denial.ResetAt,
					Message: denial.Error(),
				})
			} else {
				a.logger.ErrorContext(ctx, "fetcher failed unexpectedly",
					"source", source, "error", err)
			}
		}

		if contributed {
			payload.SourcesUsed = append(payload.SourcesUsed, source)
		}
	}

	a.mergeStaticRankings(payload)

	// Only payloads with real contributions are cached; a fully empty
	// result stays retryable for the next request.
	if payload.HasData() {
		if err := a.cache.Set(ctx, key, payload); err != nil {
			a.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		}
	}

	return payload, nil
}

// mergeStaticRankings folds the static QS/THE table positions into the
// payload. Table lookups are free and never rate limited.
func (a *aggregator) mergeStaticRankings(payload *models.AggregatedPayload) {
	if rank := QSRank(payload.Institution); rank > 0 {
		payload.QSRank = rank
	}
	if rank := THERank(payload.Institution); rank > 0 {
		payload.THERank = rank
	}
}

func (a *aggregator) recordMetric(source models.SourceType, success bool, duration time.Duration) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordSourceRequest(string(source), success, duration)
}
