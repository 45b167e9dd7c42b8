// ABOUTME: This file implements the payload cache on a process-local map
// ABOUTME: Entries expire after the configured TTL and are swept periodically
package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rank-estimator/models"
)

type cacheEntry struct {
	payload   *models.AggregatedPayload
	expiresAt time.Time
}

// PayloadCacheRepository implementation backed by a map.
type memoryCacheRepository struct {
	logger *slog.Logger
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	now func() time.Time
}

// NewMemoryCacheRepository creates the in-process payload cache.
func NewMemoryCacheRepository(ttl time.Duration, logger *slog.Logger) PayloadCacheRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &memoryCacheRepository{
		logger:  logger,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (r *memoryCacheRepository) Get(ctx context.Context, key string) (*models.AggregatedPayload, bool, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached payload.
	copied := *entry.payload
	copied.CacheHit = true
	return &copied, true, nil
}

func (r *memoryCacheRepository) Set(ctx context.Context, key string, payload *models.AggregatedPayload) error {
	if payload == nil {
		return nil
	}

	stored := *payload
	stored.CacheHit = false

	r.mu.Lock()
	r.entries[key] = cacheEntry{
		payload:   &stored,
		expiresAt: r.now().Add(r.ttl),
	}
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "payload cached", "key", key, "ttl", r.ttl)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (r *memoryCacheRepository) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, key)
			removed++
		}
	}

	if removed > 0 {
		r.logger.Debug("swept expired cache entries", "removed", removed)
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (r *memoryCacheRepository) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
