package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "system_metrics.db", cfg.DBPath)
	assert.Equal(t, time.Second, cfg.SampleInterval)
	assert.Empty(t, cfg.HTTPAddr, "http endpoint disabled by default")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VITALS_DB_PATH", "/tmp/test-metrics.db")
	t.Setenv("VITALS_SAMPLE_INTERVAL", "5s")
	t.Setenv("VITALS_HTTP_ADDR", ":8090")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://example.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test-metrics.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.SampleInterval)
	assert.Equal(t, ":8090", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:3000", "http://example.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresInvalidInterval(t *testing.T) {
	t.Setenv("VITALS_SAMPLE_INTERVAL", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.SampleInterval)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
