package config

import "fmt"

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.HTTP.Timeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive: %v", config.HTTP.Timeout)
	}

	if config.Sources.WikipediaBaseURL == "" {
		return fmt.Errorf("wikipedia base URL cannot be empty")
	}

	if config.Sources.SearchBaseURL == "" {
		return fmt.Errorf("search base URL cannot be empty")
	}

	if config.Sources.WebometricsBaseURL == "" {
		return fmt.Errorf("webometrics base URL cannot be empty")
	}

	if config.Sources.SearchDelay < 0 {
		return fmt.Errorf("search delay must be non-negative: %v", config.Sources.SearchDelay)
	}

	if config.Sources.SearchMaxResults <= 0 {
		return fmt.Errorf("search max results must be positive: %d", config.Sources.SearchMaxResults)
	}

	if config.Cache.Backend != CacheBackendMemory && config.Cache.Backend != CacheBackendRedis {
		return fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive: %v", config.Cache.TTL)
	}

	if config.Enablement.TTL <= 0 {
		return fmt.Errorf("enablement TTL must be positive: %v", config.Enablement.TTL)
	}

	if config.Batch.ItemDelay < 0 {
		return fmt.Errorf("batch item delay must be non-negative: %v", config.Batch.ItemDelay)
	}

	if config.Batch.SlowdownEvery <= 0 {
		return fmt.Errorf("batch slowdown interval must be positive: %d", config.Batch.SlowdownEvery)
	}

	if config.Batch.ProgressEvery <= 0 {
		return fmt.Errorf("batch progress interval must be positive: %d", config.Batch.ProgressEvery)
	}

	if config.Batch.CheckpointEvery <= 0 {
		return fmt.Errorf("batch checkpoint interval must be positive: %d", config.Batch.CheckpointEvery)
	}

	if config.Database.Enabled {
		if config.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty when DB_ENABLED is true")
		}
		if config.Database.User == "" {
			return fmt.Errorf("database user cannot be empty when DB_ENABLED is true")
		}
	}

	if config.Cache.Backend == CacheBackendRedis && config.Redis.URL == "" {
		return fmt.Errorf("redis URL cannot be empty when cache backend is redis")
	}

	if config.Metrics.Port <= 0 || config.Metrics.Port > 65535 {
		return fmt.Errorf("invalid metrics port: %d", config.Metrics.Port)
	}

	if config.Auth.Enabled && config.Auth.ServiceSecret == "" {
		return fmt.Errorf("SERVICE_SECRET is required when AUTH_ENABLED is true")
	}

	return nil
}
