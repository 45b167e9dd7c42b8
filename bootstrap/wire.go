// ABOUTME: This file wires every dependency of the service together
// ABOUTME: Optional backends (postgres, redis) fall back to in-memory stores
package bootstrap

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"rank-estimator/config"
	"rank-estimator/driver"
	"rank-estimator/handler"
	"rank-estimator/metrics"
	"rank-estimator/ratelimit"
	"rank-estimator/repository"
	"rank-estimator/service"
	logger "rank-estimator/utils/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config        *config.Config
	DBPool        *pgxpool.Pool
	RedisClient   *redis.Client
	Limiter       *ratelimit.SourceLimiter
	Collector     *metrics.Collector
	Logger        *slog.Logger
	ContextLogger *logger.ContextLogger

	RankingHandler *handler.RankingHandler
	BatchHandler   *handler.BatchHandler
	SourceHandler  *handler.SourceHandler
	HealthHandler  *handler.HealthHandler
}

// BuildDependencies constructs all application dependencies.
// Returns a cleanup function that should be deferred.
func BuildDependencies(ctx context.Context, log *slog.Logger, otelEnabled bool) (*Dependencies, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	httpClient := driver.NewThrottledClient(cfg.HTTP, log)
	if u, parseErr := url.Parse(cfg.Sources.SearchBaseURL); parseErr == nil && u.Host != "" {
		httpClient.PaceHost(u.Host, cfg.Sources.SearchDelay)
	}

	wikipediaClient := driver.NewWikipediaClient(cfg.Sources.WikipediaBaseURL, httpClient, log)
	searchClient := driver.NewSearchClient(cfg.Sources.SearchBaseURL, cfg.Sources.SearchMaxResults, httpClient, log)
	webometricsClient := driver.NewWebometricsClient(cfg.Sources.WebometricsBaseURL, httpClient, log)

	limiter := ratelimit.NewSourceLimiter(ratelimit.DefaultPolicies(), log)

	enablementRepo := repository.NewEnablementRepository(cfg.Enablement.TTL, log)

	var redisClient *redis.Client
	var cacheRepo repository.PayloadCacheRepository
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisClient, err = driver.InitRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		cacheRepo = repository.NewRedisCacheRepository(redisClient, cfg.Cache.TTL, log)
	default:
		cacheRepo = repository.NewMemoryCacheRepository(cfg.Cache.TTL, log)
	}

	var dbPool *pgxpool.Pool
	var resultRepo repository.ResultRepository
	if cfg.Database.Enabled {
		dbPool, err = driver.InitDB(ctx, cfg.Database, log)
		if err != nil {
			closeRedis(redisClient, log)
			return nil, nil, err
		}
		resultRepo = repository.NewResultRepository(dbPool, log)
	} else {
		resultRepo = repository.NewNoopResultRepository(log)
	}

	collector, err := metrics.NewCollector(cfg.Metrics, log)
	if err != nil {
		closeRedis(redisClient, log)
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, nil, err
	}

	// Registration order is the fetch order: cheap source first.
	fetchers := []service.SourceFetcher{
		service.NewWikipediaFetcher(wikipediaClient, limiter, log),
		service.NewSearchFetcher(searchClient, limiter, log),
		service.NewWebometricsFetcher(webometricsClient, limiter, log),
	}

	aggregator := service.NewAggregator(cacheRepo, fetchers, collector, log)
	estimator := service.NewEstimator(log)
	rankingService := service.NewRankingService(enablementRepo, aggregator, estimator, resultRepo, log)
	batchService := service.NewBatchService(rankingService, cfg.Batch, log)

	startSweeper(ctx, enablementRepo, cfg.Enablement.SweepInterval)
	startSweeper(ctx, cacheRepo, cfg.Cache.SweepInterval)

	contextLogger := logger.NewContextLoggerWithOTel(logger.LoadLoggerConfigFromEnv(), otelEnabled)

	deps := &Dependencies{
		Config:        cfg,
		DBPool:        dbPool,
		RedisClient:   redisClient,
		Limiter:       limiter,
		Collector:     collector,
		Logger:        log,
		ContextLogger: contextLogger,

		RankingHandler: handler.NewRankingHandler(rankingService, log),
		BatchHandler:   handler.NewBatchHandler(batchService, log),
		SourceHandler:  handler.NewSourceHandler(enablementRepo, limiter, log),
		HealthHandler:  handler.NewHealthHandler(dependencyChecks(dbPool, redisClient), log),
	}

	cleanup := func() {
		if dbPool != nil {
			dbPool.Close()
		}
		closeRedis(redisClient, log)
	}

	return deps, cleanup, nil
}

// startSweeper launches the expiry sweep on a store when it supports one.
// The redis-backed cache expires keys natively and is not Sweepable.
func startSweeper(ctx context.Context, store interface{}, interval time.Duration) {
	if s, ok := store.(repository.Sweepable); ok {
		s.StartSweeper(ctx, interval)
	}
}

// dependencyChecks builds the health probes for the optional backends. A
// deployment without postgres or redis simply has fewer probes.
func dependencyChecks(dbPool *pgxpool.Pool, redisClient *redis.Client) []handler.DependencyCheck {
	checks := []handler.DependencyCheck{}
	if dbPool != nil {
		checks = append(checks, handler.DependencyCheck{
			Name:  "postgres",
			Check: dbPool.Ping,
		})
	}
	if redisClient != nil {
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}
	return checks
}

func closeRedis(client *redis.Client, log *slog.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Error("failed to close redis client", "error", err)
	}
}
