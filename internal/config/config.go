// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Supported storage backends.
const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds everything the process needs to start.
type Config struct {
	Addr        string // HTTP listen address
	Backend     string // one of the Backend* constants
	BoltPath    string
	RedisAddr   string
	MongoURI    string
	MongoDB     string
	DatabaseURL string // postgres connection string
	OTELHost    string // OTLP collector host; empty means stdout exporter
	LogLevel    string
}

// Load reads the optional .env file and the environment. Unset variables
// fall back to defaults suitable for local development.
func Load() (Config, error) {
	// Missing .env is not an error; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Config{
		Addr:        getenv("ADDR", ":8080"),
		Backend:     getenv("STORE_BACKEND", BackendBolt),
		BoltPath:    getenv("BOLT_PATH", "orderdesk.db"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "orderdesk"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		OTELHost:    os.Getenv("OTEL_HOST"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	switch cfg.Backend {
	case BackendMemory, BackendBolt, BackendMongo, BackendRedis, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}
	if cfg.Backend == BackendPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
