package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the wishlist service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"WISHLIST_HTTP_PORT" envDefault:"8010"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"luxfashion"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"luxfashion_secret"`
	PostgresDB   string `env:"WISHLIST_DB_NAME" envDefault:"wishlist_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"5"`

	// Redis (wishlist read cache)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLSecs  int    `env:"WISHLIST_CACHE_TTL_SECONDS" envDefault:"300"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Session tokens
	SessionSecret string `env:"SESSION_SECRET" envDefault:"change-this-to-a-secure-secret"`
	SessionExpiry string `env:"SESSION_TOKEN_EXPIRY" envDefault:"720h"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load wishlist config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	// In non-development environments, require an explicitly set, strong session secret.
	if cfg.Environment != "development" {
		if cfg.SessionSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("SESSION_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.SessionSecret) < 32 {
			return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long, got %d", len(cfg.SessionSecret))
		}
	}

	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}
