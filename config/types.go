package config

import "time"

// Config aggregates all service configuration blocks.
type Config struct {
	Server     ServerConfig     `json:"server"`
	HTTP       HTTPConfig       `json:"http"`
	Sources    SourcesConfig    `json:"sources"`
	Cache      CacheConfig      `json:"cache"`
	Enablement EnablementConfig `json:"enablement"`
	Batch      BatchConfig      `json:"batch"`
	Database   DatabaseConfig   `json:"database"`
	Redis      RedisConfig      `json:"redis"`
	Metrics    MetricsConfig    `json:"metrics"`
	Auth       AuthConfig       `json:"auth"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9210"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"120s"`
}

type HTTPConfig struct {
	Timeout             time.Duration `json:"timeout" env:"HTTP_TIMEOUT" default:"15s"`
	UserAgent           string        `json:"user_agent" env:"HTTP_USER_AGENT" default:"rank-estimator/1.0 (+https://rank-estimator.example.com/bot)"`
	MaxIdleConns        int           `json:"max_idle_conns" env:"HTTP_MAX_IDLE_CONNS" default:"10"`
	MaxIdleConnsPerHost int           `json:"max_idle_conns_per_host" env:"HTTP_MAX_IDLE_CONNS_PER_HOST" default:"2"`
	IdleConnTimeout     time.Duration `json:"idle_conn_timeout" env:"HTTP_IDLE_CONN_TIMEOUT" default:"90s"`
}

// SourcesConfig points the fetchers at their external endpoints. SearchDelay
// is the mandatory politeness pause before each search-style request; it is
// independent of the budget windows.
type SourcesConfig struct {
	WikipediaBaseURL   string        `json:"wikipedia_base_url" env:"WIKIPEDIA_BASE_URL" default:"https://en.wikipedia.org"`
	SearchBaseURL      string        `json:"search_base_url" env:"SEARCH_BASE_URL" default:"https://html.duckduckgo.com/html"`
	WebometricsBaseURL string        `json:"webometrics_base_url" env:"WEBOMETRICS_BASE_URL" default:"https://www.webometrics.info"`
	SearchDelay        time.Duration `json:"search_delay" env:"SEARCH_DELAY" default:"2s"`
	SearchMaxResults   int           `json:"search_max_results" env:"SEARCH_MAX_RESULTS" default:"3"`
}

type CacheConfig struct {
	Backend       string        `json:"backend" env:"CACHE_BACKEND" default:"memory"`
	TTL           time.Duration `json:"ttl" env:"CACHE_TTL" default:"6h"`
	SweepInterval time.Duration `json:"sweep_interval" env:"CACHE_SWEEP_INTERVAL" default:"15m"`
}

// EnablementConfig bounds the per-requester source-toggle store. Entries
// idle longer than TTL are swept so the map cannot grow without bound over
// a long-running process.
type EnablementConfig struct {
	TTL           time.Duration `json:"ttl" env:"ENABLEMENT_TTL" default:"24h"`
	SweepInterval time.Duration `json:"sweep_interval" env:"ENABLEMENT_SWEEP_INTERVAL" default:"10m"`
}

type BatchConfig struct {
	ItemDelay          time.Duration `json:"item_delay" env:"BATCH_ITEM_DELAY" default:"1s"`
	SlowdownEvery      int           `json:"slowdown_every" env:"BATCH_SLOWDOWN_EVERY" default:"20"`
	SlowdownDelay      time.Duration `json:"slowdown_delay" env:"BATCH_SLOWDOWN_DELAY" default:"5s"`
	RateLimitDelay     time.Duration `json:"rate_limit_delay" env:"BATCH_RATE_LIMIT_DELAY" default:"10s"`
	ProgressEvery      int           `json:"progress_every" env:"BATCH_PROGRESS_EVERY" default:"10"`
	ProgressInterval   time.Duration `json:"progress_interval" env:"BATCH_PROGRESS_INTERVAL" default:"30s"`
	CheckpointEvery    int           `json:"checkpoint_every" env:"BATCH_CHECKPOINT_EVERY" default:"50"`
	CheckpointInterval time.Duration `json:"checkpoint_interval" env:"BATCH_CHECKPOINT_INTERVAL" default:"2m"`
}

type DatabaseConfig struct {
	Enabled  bool   `json:"enabled" env:"DB_ENABLED" default:"false"`
	Host     string `json:"host" env:"DB_HOST" default:"localhost"`
	Port     string `json:"port" env:"DB_PORT" default:"5432"`
	Name     string `json:"name" env:"DB_NAME" default:"rank_estimator"`
	User     string `json:"user" env:"RANK_ESTIMATOR_DB_USER" default:"rank_estimator"`
	Password string `json:"-" env:"RANK_ESTIMATOR_DB_PASSWORD" default:""`
}

type RedisConfig struct {
	URL string `json:"url" env:"REDIS_URL" default:"redis://localhost:6379"`
}

type MetricsConfig struct {
	Enabled           bool          `json:"enabled" env:"METRICS_ENABLED" default:"true"`
	Port              int           `json:"port" env:"METRICS_PORT" default:"9211"`
	Path              string        `json:"path" env:"METRICS_PATH" default:"/metrics"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" env:"METRICS_READ_HEADER_TIMEOUT" default:"10s"`
	ReadTimeout       time.Duration `json:"read_timeout" env:"METRICS_READ_TIMEOUT" default:"30s"`
	WriteTimeout      time.Duration `json:"write_timeout" env:"METRICS_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout       time.Duration `json:"idle_timeout" env:"METRICS_IDLE_TIMEOUT" default:"120s"`
}

type AuthConfig struct {
	Enabled       bool   `json:"enabled" env:"AUTH_ENABLED" default:"false"`
	ServiceSecret string `json:"-" env:"SERVICE_SECRET" default:""`
}

// Cache backend names accepted by CacheConfig.Backend.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            9210,
			ShutdownTimeout: 30 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    120 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:             15 * time.Second,
			UserAgent:           "rank-estimator/1.0 (+https://rank-estimator.example.com/bot)",
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
		Sources: SourcesConfig{
			WikipediaBaseURL:   "https://en.wikipedia.org",
			SearchBaseURL:      "https://html.duckduckgo.com/html",
			WebometricsBaseURL: "https://www.webometrics.info",
			SearchDelay:        2 * time.Second,
			SearchMaxResults:   3,
		},
		Cache: CacheConfig{
			Backend:       CacheBackendMemory,
			TTL:           6 * time.Hour,
			SweepInterval: 15 * time.Minute,
		},
		Enablement: EnablementConfig{
			TTL:           24 * time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Batch: BatchConfig{
			ItemDelay:          1 * time.Second,
			SlowdownEvery:      20,
			SlowdownDelay:      5 * time.Second,
			RateLimitDelay:     10 * time.Second,
			ProgressEvery:      10,
			ProgressInterval:   30 * time.Second,
			CheckpointEvery:    50,
			CheckpointInterval: 2 * time.Minute,
		},
		Database: DatabaseConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    "5432",
			Name:    "rank_estimator",
			User:    "rank_estimator",
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379",
		},
		Metrics: MetricsConfig{
			Enabled:           true,
			Port:              9211,
			Path:              "/metrics",
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Auth: AuthConfig{
			Enabled: false,
		},
	}
}
