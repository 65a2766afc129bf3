package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/bazaarly/sellerconsole/pkg/config"
)

// Config holds all configuration for the seller console service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SELLER_CONSOLE_HTTP_PORT" envDefault:"8080"`

	// JWT
	JWTSecret           string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTExpiryMins       int    `env:"JWT_EXPIRY_MINUTES" envDefault:"60"`
	JWTRefreshExpiryHrs int    `env:"JWT_REFRESH_EXPIRY_HOURS" envDefault:"168"`

	// AI enrichment
	AIBaseURL             string `env:"AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	AIAPIKey              string `env:"AI_API_KEY"`
	AIStub                bool   `env:"AI_STUB" envDefault:"false"`
	AIModel               string `env:"AI_MODEL" envDefault:"gemini-2.5-flash"`
	EnrichmentTimeoutSecs int    `env:"ENRICHMENT_TIMEOUT_SECONDS" envDefault:"45"`

	// Rate limit on enrichment requests, per seller
	EnrichRateRPS   int `env:"ENRICH_RATE_RPS" envDefault:"1"`
	EnrichRateBurst int `env:"ENRICH_RATE_BURST" envDefault:"3"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load seller console config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.EnrichmentTimeoutSecs < 1 {
		return fmt.Errorf("ENRICHMENT_TIMEOUT_SECONDS must be positive, got %d", c.EnrichmentTimeoutSecs)
	}
	if !c.AIStub && c.AIAPIKey == "" {
		return fmt.Errorf("AI_API_KEY is required unless AI_STUB is enabled")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	return nil
}

// EnrichmentTimeout returns the per-run enrichment deadline.
func (c *Config) EnrichmentTimeout() time.Duration {
	return time.Duration(c.EnrichmentTimeoutSecs) * time.Second
}

// JWTExpiry returns the access token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryMins) * time.Minute
}
