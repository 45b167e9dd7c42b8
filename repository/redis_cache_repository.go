// ABOUTME: This file implements the payload cache on redis for multi-instance setups
// ABOUTME: Payloads are stored as JSON with the TTL enforced server-side
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"rank-estimator/models"
)

const redisCachePrefix = "rank-estimator:payload:"

// PayloadCacheRepository implementation backed by redis.
type redisCacheRepository struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewRedisCacheRepository creates the redis-backed payload cache.
func NewRedisCacheRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) PayloadCacheRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisCacheRepository{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func (r *redisCacheRepository) Get(ctx context.Context, key string) (*models.AggregatedPayload, bool, error) {
	raw, err := r.client.Get(ctx, redisCachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var payload models.AggregatedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// A corrupt entry is treated as a miss so the aggregator refetches.
		r.logger.WarnContext(ctx, "dropping corrupt cache entry", "key", key, "error", err)
		r.client.Del(ctx, redisCachePrefix+key)
		return nil, false, nil
	}

	payload.CacheHit = true
	return &payload, true, nil
}

func (r *redisCacheRepository) Set(ctx context.Context, key string, payload *models.AggregatedPayload) error {
	if payload == nil {
		return nil
	}

	stored := *payload
	stored.CacheHit = false

	raw, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := r.client.Set(ctx, redisCachePrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	r.logger.DebugContext(ctx, "payload cached", "key", key, "ttl", r.ttl)
	return nil
}
