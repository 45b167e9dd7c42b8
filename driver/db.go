package driver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rank-estimator/config"
	"rank-estimator/retry"
	apperrors "rank-estimator/utils/errors"
)

// InitDB opens the postgres pool used for ranking history persistence.
func InitDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	// The database may still be starting when the service comes up.
	retrier := retry.NewRetrier(retry.DefaultConfig(), apperrors.IsRetryable, logger)
	if err := retrier.Do(ctx, "database ping", func() error {
		return pool.Ping(ctx)
	}); err != nil {
		logger.Error("failed to ping database", "error", err)
		pool.Close()
		return nil, err
	}

	logger.Info("connected to database pool",
		"host", cfg.Host,
		"database", cfg.Name,
		"max_conns", poolConfig.MaxConns)
	return pool, nil
}

// RetryDBOperation retries operations that fail with transient "conn busy"
// errors, backing off exponentially between attempts.
func RetryDBOperation(ctx context.Context, logger *slog.Logger, operationName string, operation func() error) error {
	const maxRetries = 3
	baseDelay := 100 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if strings.Contains(err.Error(), "conn busy") && attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<attempt)
			logger.Warn("database connection busy, retrying",
				"operation", operationName,
				"attempt", attempt+1,
				"retry_delay", delay,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}

		return err
	}

	return fmt.Errorf("operation %s failed after %d retries", operationName, maxRetries)
}
