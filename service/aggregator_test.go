package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-estimator/models"
	"rank-estimator/ratelimit"
	"rank-estimator/repository"
)

// stubFetcher fills its payload section and counts attempts so tests can
// assert on cache behavior.
type stubFetcher struct {
	source models.SourceType
	calls  int
	err    error
	fill   func(payload *models.AggregatedPayload)
}

func (f *stubFetcher) Source() models.SourceType { return f.source }

func (f *stubFetcher) Fetch(ctx context.Context, name, country string, payload *models.AggregatedPayload) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	if f.fill == nil {
		return false, nil
	}
	f.fill(payload)
	return true, nil
}

type recordedSample struct {
	source  string
	success bool
}

type stubMetrics struct {
	samples []recordedSample
}

func (m *stubMetrics) RecordSourceRequest(source string, success bool, duration time.Duration) {
	m.samples = append(m.samples, recordedSample{source: source, success: success})
}

func allEnabled() models.SourceEnablement {
	return models.SourceEnablement{Wikipedia: true, Search: true, Webometrics: true}
}

func wikipediaStub() *stubFetcher {
	return &stubFetcher{
		source: models.SourceWikipedia,
		fill: func(payload *models.AggregatedPayload) {
			payload.Wikipedia = &models.WikipediaData{Title: "Test", Summary: "A university."}
		},
	}
}

func TestAggregator_FetchAll(t *testing.T) {
	t.Run("should serve repeat requests from the cache without refetching", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		fetcher := wikipediaStub()
		agg := NewAggregator(cache, []SourceFetcher{fetcher}, nil, testLoggerSvc())

		first, err := agg.FetchAll(context.Background(), "Riverdale University", "France", allEnabled())
		require.NoError(t, err)
		require.True(t, first.HasData())
		assert.False(t, first.CacheHit)

		second, err := agg.FetchAll(context.Background(), "riverdale university", "FRANCE", allEnabled())
		require.NoError(t, err)
		assert.True(t, second.CacheHit)
		assert.Equal(t, first.Wikipedia, second.Wikipedia)
		assert.Equal(t, 1, fetcher.calls, "cache hit must not reach the fetcher")
	})

	t.Run("should never cache a payload with no contributions", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		fetcher := &stubFetcher{source: models.SourceWikipedia}
		agg := NewAggregator(cache, []SourceFetcher{fetcher}, nil, testLoggerSvc())

		first, err := agg.FetchAll(context.Background(), "Unknown College", "", allEnabled())
		require.NoError(t, err)
		assert.False(t, first.HasData())

		_, err = agg.FetchAll(context.Background(), "Unknown College", "", allEnabled())
		require.NoError(t, err)
		assert.Equal(t, 2, fetcher.calls, "empty result must stay retryable")
	})

	t.Run("should skip disabled sources entirely", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		wiki := wikipediaStub()
		search := &stubFetcher{source: models.SourceSearch}
		agg := NewAggregator(cache, []SourceFetcher{wiki, search}, nil, testLoggerSvc())

		_, err := agg.FetchAll(context.Background(), "Riverdale University", "", models.DefaultEnablement())

		require.NoError(t, err)
		assert.Equal(t, 1, wiki.calls)
		assert.Zero(t, search.calls, "disabled source must not be attempted")
	})

	t.Run("should fold a rate-limit denial into a note and keep going", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		resetAt := time.Now().Add(time.Minute)
		denied := &stubFetcher{
			source: models.SourceWikipedia,
			err: &ratelimit.LimitExceeded{
				Source:      models.SourceWikipedia,
				ResetAt:     resetAt,
				Description: "100 calls per minute",
			},
		}
		webometrics := &stubFetcher{
			source: models.SourceWebometrics,
			fill: func(payload *models.AggregatedPayload) {
				payload.Webometrics = &models.WebometricsData{WorldRank: 812}
			},
		}
		agg := NewAggregator(cache, []SourceFetcher{denied, webometrics}, nil, testLoggerSvc())

		payload, err := agg.FetchAll(context.Background(), "Riverdale University", "", allEnabled())

		require.NoError(t, err, "a denial never fails the aggregation")
		require.Len(t, payload.Notes, 1)
		assert.Equal(t, models.SourceWikipedia, payload.Notes[0].Source)
		assert.Equal(t, models.NoteStatusRateLimited, payload.Notes[0].Status)
		assert.Equal(t, resetAt, payload.Notes[0].ResetAt)
		assert.Equal(t, 1, webometrics.calls, "later sources still run after a denial")
		assert.Equal(t, []models.SourceType{models.SourceWebometrics}, payload.SourcesUsed)
	})

	t.Run("should run fetchers in registration order", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		var order []models.SourceType
		mk := func(source models.SourceType) *stubFetcher {
			return &stubFetcher{
				source: source,
				fill: func(payload *models.AggregatedPayload) {
					order = append(order, source)
				},
			}
		}
		agg := NewAggregator(cache, []SourceFetcher{
			mk(models.SourceWikipedia), mk(models.SourceSearch), mk(models.SourceWebometrics),
		}, nil, testLoggerSvc())

		payload, err := agg.FetchAll(context.Background(), "Riverdale University", "", allEnabled())

		require.NoError(t, err)
		want := []models.SourceType{models.SourceWikipedia, models.SourceSearch, models.SourceWebometrics}
		assert.Equal(t, want, order)
		assert.Equal(t, want, payload.SourcesUsed)
	})

	t.Run("should merge static ranking tables unconditionally", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		agg := NewAggregator(cache, nil, nil, testLoggerSvc())

		payload, err := agg.FetchAll(context.Background(), "Harvard University", "USA", allEnabled())

		require.NoError(t, err)
		assert.Equal(t, 4, payload.QSRank)
		assert.Equal(t, 2, payload.THERank)
		assert.False(t, payload.HasData(), "table merges are not source contributions")
	})

	t.Run("should record one metrics sample per attempt", func(t *testing.T) {
		cache := repository.NewMemoryCacheRepository(time.Hour, testLoggerSvc())
		metrics := &stubMetrics{}
		denied := &stubFetcher{
			source: models.SourceSearch,
			err:    &ratelimit.LimitExceeded{Source: models.SourceSearch},
		}
		agg := NewAggregator(cache, []SourceFetcher{wikipediaStub(), denied}, metrics, testLoggerSvc())

		_, err := agg.FetchAll(context.Background(), "Riverdale University", "", allEnabled())

		require.NoError(t, err)
		require.Len(t, metrics.samples, 2)
		assert.Equal(t, recordedSample{source: "wikipedia", success: true}, metrics.samples[0])
		assert.Equal(t, recordedSample{source: "search", success: false}, metrics.samples[1])
	})
}

func TestCacheKey(t *testing.T) {
	t.Run("should fold case and whitespace", func(t *testing.T) {
		assert.Equal(t, "harvard university|usa", CacheKey("  Harvard University ", "USA"))
	})

	t.Run("should keep distinct countries distinct", func(t *testing.T) {
		assert.NotEqual(t, CacheKey("Trinity College", "Ireland"), CacheKey("Trinity College", "USA"))
	})
}
