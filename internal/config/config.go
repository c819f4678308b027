package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers for the app snapshot
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Persistence
	StorageDriver string
	SnapshotID    string
	SQLitePath    string
	DatabaseURL   string

	// Optional YAML plan table; built-in plans are used when empty
	PlansFile string

	// Rate limiting of mutating requests, per client IP
	RateLimitPerMinute int
	RateLimitBurst     int

	// Command queue capacity
	QueueSize int

	// S3 Storage
	S3 S3Config
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		SnapshotID:         getEnv("SNAPSHOT_ID", "default"),
		SQLitePath:         getEnv("SQLITE_PATH", "data/spendsense.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		PlansFile:          getEnv("PLANS_FILE", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		QueueSize:          getEnvInt("COMMAND_QUEUE_SIZE", 64),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "spendsense-state"),
			Prefix:          getEnv("S3_PREFIX", "snapshots"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite storage driver")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.SnapshotID == "" {
		return fmt.Errorf("SNAPSHOT_ID is required")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
