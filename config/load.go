package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadConfig builds the configuration from defaults and overrides provided
// via environment variables.
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) error {
	if err := loadServerConfig(&config.Server); err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	if err := loadHTTPConfig(&config.HTTP); err != nil {
		return fmt.Errorf("failed to load HTTP config: %w", err)
	}

	if err := loadSourcesConfig(&config.Sources); err != nil {
		return fmt.Errorf("failed to load sources config: %w", err)
	}

	if err := loadCacheConfig(&config.Cache); err != nil {
		return fmt.Errorf("failed to load cache config: %w", err)
	}

	if err := loadEnablementConfig(&config.Enablement); err != nil {
		return fmt.Errorf("failed to load enablement config: %w", err)
	}

	if err := loadBatchConfig(&config.Batch); err != nil {
		return fmt.Errorf("failed to load batch config: %w", err)
	}

	if err := loadDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if url := os.Getenv("REDIS_URL"); url != "" {
		config.Redis.URL = url
	}

	if err := loadMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("failed to load metrics config: %w", err)
	}

	if err := loadAuthConfig(&config.Auth); err != nil {
		return fmt.Errorf("failed to load auth config: %w", err)
	}

	return nil
}

func loadServerConfig(cfg *ServerConfig) error {
	var err error

	if cfg.Port, err = parseIntEnv("SERVER_PORT", cfg.Port); err != nil {
		return err
	}

	if cfg.ShutdownTimeout, err = parseDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	if cfg.ReadTimeout, err = parseDurationEnv("SERVER_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return err
	}

	if cfg.WriteTimeout, err = parseDurationEnv("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return err
	}

	return nil
}

func loadHTTPConfig(cfg *HTTPConfig) error {
	var err error

	if cfg.Timeout, err = parseDurationEnv("HTTP_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if agent := os.Getenv("HTTP_USER_AGENT"); agent != "" {
		cfg.UserAgent = agent
	}

	if cfg.MaxIdleConns, err = parseIntEnv("HTTP_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return err
	}

	if cfg.MaxIdleConnsPerHost, err = parseIntEnv("HTTP_MAX_IDLE_CONNS_PER_HOST", cfg.MaxIdleConnsPerHost); err != nil {
		return err
	}

	if cfg.IdleConnTimeout, err = parseDurationEnv("HTTP_IDLE_CONN_TIMEOUT", cfg.IdleConnTimeout); err != nil {
		return err
	}

	return nil
}

func loadSourcesConfig(cfg *SourcesConfig) error {
	var err error

	if url := os.Getenv("WIKIPEDIA_BASE_URL"); url != "" {
		cfg.WikipediaBaseURL = url
	}

	if url := os.Getenv("SEARCH_BASE_URL"); url != "" {
		cfg.SearchBaseURL = url
	}

	if url := os.Getenv("WEBOMETRICS_BASE_URL"); url != "" {
		cfg.WebometricsBaseURL = url
	}

	if cfg.SearchDelay, err = parseDurationEnv("SEARCH_DELAY", cfg.SearchDelay); err != nil {
		return err
	}

	if cfg.SearchMaxResults, err = parseIntEnv("SEARCH_MAX_RESULTS", cfg.SearchMaxResults); err != nil {
		return err
	}

	return nil
}

func loadCacheConfig(cfg *CacheConfig) error {
	var err error

	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		cfg.Backend = backend
	}

	if cfg.TTL, err = parseDurationEnv("CACHE_TTL", cfg.TTL); err != nil {
		return err
	}

	if cfg.SweepInterval, err = parseDurationEnv("CACHE_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return err
	}

	return nil
}

func loadEnablementConfig(cfg *EnablementConfig) error {
	var err error

	if cfg.TTL, err = parseDurationEnv("ENABLEMENT_TTL", cfg.TTL); err != nil {
		return err
	}

	if cfg.SweepInterval, err = parseDurationEnv("ENABLEMENT_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return err
	}

	return nil
}

func loadBatchConfig(cfg *BatchConfig) error {
	var err error

	if cfg.ItemDelay, err = parseDurationEnv("BATCH_ITEM_DELAY", cfg.ItemDelay); err != nil {
		return err
	}

	if cfg.SlowdownEvery, err = parseIntEnv("BATCH_SLOWDOWN_EVERY", cfg.SlowdownEvery); err != nil {
		return err
	}

	if cfg.SlowdownDelay, err = parseDurationEnv("BATCH_SLOWDOWN_DELAY", cfg.SlowdownDelay); err != nil {
		return err
	}

	if cfg.RateLimitDelay, err = parseDurationEnv("BATCH_RATE_LIMIT_DELAY", cfg.RateLimitDelay); err != nil {
		return err
	}

	if cfg.ProgressEvery, err = parseIntEnv("BATCH_PROGRESS_EVERY", cfg.ProgressEvery); err != nil {
		return err
	}

	if cfg.ProgressInterval, err = parseDurationEnv("BATCH_PROGRESS_INTERVAL", cfg.ProgressInterval); err != nil {
		return err
	}

	if cfg.CheckpointEvery, err = parseIntEnv("BATCH_CHECKPOINT_EVERY", cfg.CheckpointEvery); err != nil {
		return err
	}

	if cfg.CheckpointInterval, err = parseDurationEnv("BATCH_CHECKPOINT_INTERVAL", cfg.CheckpointInterval); err != nil {
		return err
	}

	return nil
}

func loadDatabaseConfig(cfg *DatabaseConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("DB_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}

	if port := os.Getenv("DB_PORT"); port != "" {
		cfg.Port = port
	}

	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}

	if user := os.Getenv("RANK_ESTIMATOR_DB_USER"); user != "" {
		cfg.User = user
	}

	if password := os.Getenv("RANK_ESTIMATOR_DB_PASSWORD"); password != "" {
		cfg.Password = password
	}

	return nil
}

func loadMetricsConfig(cfg *MetricsConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("METRICS_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if cfg.Port, err = parseIntEnv("METRICS_PORT", cfg.Port); err != nil {
		return err
	}

	if path := os.Getenv("METRICS_PATH"); path != "" {
		cfg.Path = path
	}

	if cfg.ReadHeaderTimeout, err = parseDurationEnv("METRICS_READ_HEADER_TIMEOUT", cfg.ReadHeaderTimeout); err != nil {
		return err
	}

	if cfg.ReadTimeout, err = parseDurationEnv("METRICS_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return err
	}

	if cfg.WriteTimeout, err = parseDurationEnv("METRICS_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return err
	}

	if cfg.IdleTimeout, err = parseDurationEnv("METRICS_IDLE_TIMEOUT", cfg.IdleTimeout); err != nil {
		return err
	}

	return nil
}

func loadAuthConfig(cfg *AuthConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("AUTH_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if secret := os.Getenv("SERVICE_SECRET"); secret != "" {
		cfg.ServiceSecret = secret
	}

	return nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return d, nil
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return i, nil
	}
	return defaultValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return b, nil
	}
	return defaultValue, nil
}
