package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"rank-estimator/config"
	"rank-estimator/retry"
	apperrors "rank-estimator/utils/errors"
)

// InitRedis connects the redis client backing the shared payload cache.
func InitRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	retrier := retry.NewRetrier(retry.DefaultConfig(), apperrors.IsRetryable, logger)
	if err := retrier.Do(ctx, "redis ping", func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis", "addr", opts.Addr)
	return client, nil
}
