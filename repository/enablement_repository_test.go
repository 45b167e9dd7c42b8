package repository

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-estimator/models"
)

func testLoggerRepo() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func TestEnablementRepository_Get(t *testing.T) {
	t.Run("should create default enablement for unknown requester", func(t *testing.T) {
		repo := NewEnablementRepository(time.Hour, testLoggerRepo())

		enablement, err := repo.Get(context.Background(), "user-1")

		require.NoError(t, err)
		assert.True(t, enablement.Wikipedia)
		assert.False(t, enablement.Search)
		assert.False(t, enablement.Webometrics)
	})

	t.Run("should reject empty requester id", func(t *testing.T) {
		repo := NewEnablementRepository(time.Hour, testLoggerRepo())

		_, err := repo.Get(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestEnablementRepository_Toggle(t *testing.T) {
	t.Run("should flip a source and persist the change", func(t *testing.T) {
		repo := NewEnablementRepository(time.Hour, testLoggerRepo())
		ctx := context.Background()

		updated, err := repo.Toggle(ctx, "user-1", models.SourceSearch, true)
		require.NoError(t, err)
		assert.True(t, updated.Search)

		got, err := repo.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, got.Search)
		assert.True(t, got.Wikipedia)
	})

	t.Run("should reject sources without a toggle", func(t *testing.T) {
		repo := NewEnablementRepository(time.Hour, testLoggerRepo())

		_, err := repo.Toggle(context.Background(), "user-1", models.SourceQS, true)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no toggle")
	})

	t.Run("should not affect other requesters", func(t *testing.T) {
		repo := NewEnablementRepository(time.Hour, testLoggerRepo())
		ctx := context.Background()

		_, err := repo.Toggle(ctx, "user-1", models.SourceWikipedia, false)
		require.NoError(t, err)

		other, err := repo.Get(ctx, "user-2")
		require.NoError(t, err)
		assert.True(t, other.Wikipedia)
	})
}

func TestEnablementRepository_Sweep(t *testing.T) {
	t.Run("should remove entries idle past the ttl", func(t *testing.T) {
		repo := NewEnablementRepository(time.Hour, testLoggerRepo()).(*enablementRepository)
		ctx := context.Background()

		base := time.Now()
		repo.now = func() time.Time { return base }
		_, err := repo.Get(ctx, "stale-user")
		require.NoError(t, err)

		repo.now = func() time.Time { return base.Add(30 * time.Minute) }
		_, err = repo.Get(ctx, "fresh-user")
		require.NoError(t, err)

		repo.now = func() time.Time { return base.Add(90 * time.Minute) }
		removed := repo.Sweep()

		assert.Equal(t, 1, removed)
		assert.NotContains(t, repo.entries, "stale-user")
		assert.Contains(t, repo.entries, "fresh-user")
	})
}

func TestMemoryCacheRepository(t *testing.T) {
	payload := &models.AggregatedPayload{
		Institution: "Harvard University",
		Country:     "USA",
		SourcesUsed: []models.SourceType{models.SourceWikipedia},
		FetchedAt:   time.Now(),
	}

	t.Run("should round-trip a payload and mark the hit", func(t *testing.T) {
		repo := NewMemoryCacheRepository(time.Hour, testLoggerRepo())
		ctx := context.Background()

		require.NoError(t, repo.Set(ctx, "harvard university|usa", payload))

		got, ok, err := repo.Get(ctx, "harvard university|usa")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Harvard University", got.Institution)
		assert.True(t, got.CacheHit)
	})

	t.Run("should miss for unknown keys", func(t *testing.T) {
		repo := NewMemoryCacheRepository(time.Hour, testLoggerRepo())

		_, ok, err := repo.Get(context.Background(), "nothing|here")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should expire entries after the ttl", func(t *testing.T) {
		repo := NewMemoryCacheRepository(time.Hour, testLoggerRepo()).(*memoryCacheRepository)
		ctx := context.Background()

		base := time.Now()
		repo.now = func() time.Time { return base }
		require.NoError(t, repo.Set(ctx, "k", payload))

		repo.now = func() time.Time { return base.Add(2 * time.Hour) }
		_, ok, err := repo.Get(ctx, "k")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should sweep only expired entries", func(t *testing.T) {
		repo := NewMemoryCacheRepository(time.Hour, testLoggerRepo()).(*memoryCacheRepository)
		ctx := context.Background()

		base := time.Now()
		repo.now = func() time.Time { return base }
		require.NoError(t, repo.Set(ctx, "old", payload))

		repo.now = func() time.Time { return base.Add(45 * time.Minute) }
		require.NoError(t, repo.Set(ctx, "new", payload))

		repo.now = func() time.Time { return base.Add(90 * time.Minute) }
		removed := repo.Sweep()

		assert.Equal(t, 1, removed)
		assert.NotContains(t, repo.entries, "old")
		assert.Contains(t, repo.entries, "new")
	})
}

func TestResultRepository(t *testing.T) {
	t.Run("should handle nil database gracefully", func(t *testing.T) {
		repo := NewResultRepository(nil, testLoggerRepo())

		err := repo.Save(context.Background(), &models.RankingResult{ID: "x"})
		assert.Error(t, err)

		_, err = repo.History(context.Background(), "user-1", 10)
		assert.Error(t, err)
	})

	t.Run("noop store should accept and return nothing", func(t *testing.T) {
		repo := NewNoopResultRepository(testLoggerRepo())

		err := repo.Save(context.Background(), &models.RankingResult{ID: "x"})
		require.NoError(t, err)

		results, err := repo.History(context.Background(), "user-1", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
