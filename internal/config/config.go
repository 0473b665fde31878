package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the asset service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"asset-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"ASSET_API_PORT" envDefault:"8180"`
	LogLevel        string        `env:"ASSET_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database (required, no default)
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Database Connection Pool
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Auth
	SecretKey       string        `env:"SECRET_KEY,notEmpty"`
	AuthTokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
	SubscriptionTTL time.Duration `env:"SUBSCRIPTION_TTL" envDefault:"720h"`

	// Ledger canister
	LedgerEndpoint    string        `env:"LEDGER_AGENT_ENDPOINT,notEmpty"`
	LedgerPrincipalID string        `env:"LEDGER_PRINCIPAL_ID,notEmpty"`
	LedgerTimeout     time.Duration `env:"LEDGER_TIMEOUT" envDefault:"30s"`

	// Pinning Backend Selection
	PinningBackend string `env:"PINNING_BACKEND" envDefault:"pinata"` // Options: "pinata" or "s3"

	// Pinata Configuration
	PinataAPIURL      string        `env:"PINATA_API_URL" envDefault:"https://api.pinata.cloud"`
	PinataAPIKey      string        `env:"PINATA_API_KEY"`
	PinataAPISecret   string        `env:"PINATA_API_SECRET"`
	PinataIPFSGateway string        `env:"PINATA_IPFS_GATEWAY"`
	PinataTimeout     time.Duration `env:"PINATA_TIMEOUT" envDefault:"60s"`

	// S3 Pinning Configuration (content addressed gateway)
	S3Endpoint       string `env:"PIN_S3_ENDPOINT"`
	S3PublicEndpoint string `env:"PIN_S3_PUBLIC_ENDPOINT"`
	S3Region         string `env:"PIN_S3_REGION" envDefault:"us-west-2"`
	S3Bucket         string `env:"PIN_S3_BUCKET"`
	S3AccessKeyID    string `env:"PIN_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"PIN_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle   bool   `env:"PIN_S3_USE_PATH_STYLE" envDefault:"true"`

	// Upload limits
	MaxUploadBytes int64 `env:"ASSET_MAX_UPLOAD_BYTES" envDefault:"536870912"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.PinataAPIKey = strings.TrimSpace(cfg.PinataAPIKey)
	cfg.PinataAPISecret = strings.TrimSpace(cfg.PinataAPISecret)
	cfg.PinataIPFSGateway = strings.TrimSpace(cfg.PinataIPFSGateway)
	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)

	if cfg.IsPinataBackend() {
		if cfg.PinataAPIKey == "" || cfg.PinataAPISecret == "" {
			return nil, fmt.Errorf("PINATA_API_KEY and PINATA_API_SECRET are required when PINNING_BACKEND is pinata")
		}
		if cfg.PinataIPFSGateway == "" {
			return nil, fmt.Errorf("PINATA_IPFS_GATEWAY is required when PINNING_BACKEND is pinata")
		}
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsPinataBackend returns true if the Pinata pinning backend is configured.
func (c *Config) IsPinataBackend() bool {
	backend := strings.ToLower(strings.TrimSpace(c.PinningBackend))
	return backend == "" || backend == "pinata"
}

// IsS3Backend returns true if the S3 pinning backend is configured.
func (c *Config) IsS3Backend() bool {
	return strings.ToLower(strings.TrimSpace(c.PinningBackend)) == "s3"
}
