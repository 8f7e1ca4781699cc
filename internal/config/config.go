// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSpanner = "spanner"
	BackendMemory  = "memory"
)

// DefaultSpannerDatabase points at the local emulator database.
const DefaultSpannerDatabase = "projects/test-project/instances/dev-instance/databases/price-resolver-db"

// Config holds application configuration.
type Config struct {
	SpannerDB       string
	StoreBackend    string
	GRPCPort        string
	HTTPPort        string
	ShutdownTimeout time.Duration
	LogLevel        string
	SeedSampleData  bool
}

// Load reads an optional .env file, then the environment, applying defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := Config{
		SpannerDB:       getenv("SPANNER_DATABASE", DefaultSpannerDatabase),
		StoreBackend:    strings.ToLower(getenv("STORE_BACKEND", BackendSpanner)),
		GRPCPort:        getenv("GRPC_PORT", "9090"),
		HTTPPort:        getenv("HTTP_PORT", "8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT_SECONDS", 15),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		SeedSampleData:  boolenv("SEED_SAMPLE_DATA", false),
	}

	switch c.StoreBackend {
	case BackendSpanner, BackendMemory:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendSpanner, BackendMemory, c.StoreBackend)
	}
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
