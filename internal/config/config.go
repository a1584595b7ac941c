// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Server configuration
	MetricsPort     int    `env:"METRICS_PORT" envDefault:"8080"`
	MetricsEndpoint string `env:"METRICS_ENDPOINT" envDefault:"/metrics"`
	Environment     string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName     string `env:"SERVICE_NAME" envDefault:"progression-engine"`

	// Redis configuration
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// Engine tuning overrides, overlaid on built-in defaults
	TuningPath string `env:"TUNING_PATH" envDefault:"config/tuning.yaml"`

	// Catch-up worker configuration
	CatchupEnabled         bool `env:"CATCHUP_ENABLED" envDefault:"true"`
	CatchupIntervalMinutes int  `env:"CATCHUP_INTERVAL_MINUTES" envDefault:"30"`
	CatchupLookbackDays    int  `env:"CATCHUP_LOOKBACK_DAYS" envDefault:"30"`

	// Telemetry configuration
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinURL       string `env:"ZIPKIN_URL"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"progression-engine"`
}
