package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searoute/searoute/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.False(t, cfg.TelemetryEnabled)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 10*time.Minute, cfg.EvalTimeout)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("EVAL_CONCURRENCY", "8")
	t.Setenv("EVAL_TIMEOUT_SEC", "120")
	t.Setenv("SIMULATION_SEED", "12345")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.TelemetryEnabled)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 2*time.Minute, cfg.EvalTimeout)
	assert.Equal(t, int64(12345), cfg.Seed)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("EVAL_CONCURRENCY", "zero")
	_, err := config.Load()
	require.Error(t, err)
}
