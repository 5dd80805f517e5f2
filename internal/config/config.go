package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Server   ServerConfig
	Holdings HoldingsConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Jobs     JobsConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"5001"`
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Addr string // Combined host:port for convenience
}

// HoldingsConfig points at the static portfolio file.
type HoldingsConfig struct {
	Path string `env:"HOLDINGS_PATH" envDefault:"./data/portfolio.json"`
}

// UpstreamConfig controls how the market-data API is called.
type UpstreamConfig struct {
	BaseURL          string        `env:"YAHOO_BASE_URL" envDefault:"https://query1.finance.yahoo.com"`
	Timeout          time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	Debug            bool          `env:"API_DEBUG" envDefault:"false"`
	RetryCount       int           `env:"API_RETRY_COUNT" envDefault:"2"`
	RetryWait        time.Duration `env:"API_RETRY_WAIT" envDefault:"300ms"`
	RetryMaxWait     time.Duration `env:"API_RETRY_MAX_WAIT" envDefault:"2s"`
	MinInterval      time.Duration `env:"API_MIN_INTERVAL" envDefault:"100ms"`
	MaxConcurrent    int           `env:"API_MAX_CONCURRENT" envDefault:"5"`
	MaxSymbols       int           `env:"API_MAX_SYMBOLS" envDefault:"100"`
	MaxPrice         float64       `env:"QUOTE_MAX_PRICE" envDefault:"100000"`
	EarningsCurrency string        `env:"EARNINGS_CURRENCY" envDefault:"₹"`
	FetchTimeout     time.Duration `env:"API_FETCH_TIMEOUT" envDefault:"30s"`
}

// CacheConfig holds TTLs and sizing for the quote and metrics caches.
type CacheConfig struct {
	Backend    string        `env:"CACHE_BACKEND" envDefault:"memory"`
	MaxEntries int64         `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`
	QuoteTTL   time.Duration `env:"CACHE_QUOTE_TTL" envDefault:"15s"`
	MetricsTTL time.Duration `env:"CACHE_METRICS_TTL" envDefault:"60s"`
}

// RedisConfig is only used when Cache.Backend is "redis".
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// JobsConfig holds the cron specs for background cache refreshes.
type JobsConfig struct {
	Enabled         bool   `env:"JOBS_ENABLED" envDefault:"true"`
	QuotesSchedule  string `env:"JOBS_QUOTES_SCHEDULE" envDefault:"@every 15s"`
	MetricsSchedule string `env:"JOBS_METRICS_SCHEDULE" envDefault:"@every 60s"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (expected memory or redis)", c.Cache.Backend)
	}
	if c.Upstream.MaxConcurrent < 1 {
		return fmt.Errorf("API_MAX_CONCURRENT must be at least 1, got %d", c.Upstream.MaxConcurrent)
	}
	if c.Upstream.MaxPrice <= 0 {
		return fmt.Errorf("QUOTE_MAX_PRICE must be positive, got %v", c.Upstream.MaxPrice)
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1, got %d", c.Cache.MaxEntries)
	}
	return nil
}
