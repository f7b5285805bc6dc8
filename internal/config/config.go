package config

// Config holds all application configuration loaded from environment variables.
// Struct tags follow github.com/caarlos0/env conventions.
type Config struct {
	// Server configuration
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8090"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"puzzletrack"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis configuration
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// Catalog configuration. Empty means the built-in game catalog.
	CatalogPath string `env:"CATALOG_PATH"`

	// Recompute schedule (cron expression); empty disables the nightly job.
	RecomputeSchedule string `env:"RECOMPUTE_SCHEDULE" envDefault:"0 3 * * *"`

	// Telemetry configuration
	OtelEnabled        bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelZipkinEndpoint string `env:"OTEL_ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}
