// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the planner.
type Config struct {
	// Environment names the deployment environment (development,
	// staging, production).
	Environment string

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string

	// OTLPEndpoint is the collector address for traces and metrics.
	OTLPEndpoint string

	// TelemetryEnabled turns OTLP export on. Off by default so local
	// runs need no collector.
	TelemetryEnabled bool

	// Concurrency bounds parallel route evaluation.
	Concurrency int

	// EvalTimeout bounds one analysis request end to end.
	EvalTimeout time.Duration

	// Seed drives condition simulation. Zero derives a seed from the
	// clock at request time.
	Seed int64
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:      getenvDefault("APP_ENV", "development"),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
		OTLPEndpoint:     getenvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
	}

	if v := os.Getenv("EVAL_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid EVAL_CONCURRENCY: %q", v)
		}
		cfg.Concurrency = n
	} else {
		cfg.Concurrency = 4
	}

	if v := os.Getenv("EVAL_TIMEOUT_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec <= 0 {
			return nil, fmt.Errorf("invalid EVAL_TIMEOUT_SEC: %q", v)
		}
		cfg.EvalTimeout = time.Duration(sec) * time.Second
	} else {
		cfg.EvalTimeout = 10 * time.Minute
	}

	if v := os.Getenv("SIMULATION_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SIMULATION_SEED: %q", v)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
