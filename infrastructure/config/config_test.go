package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.EnableMetrics)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.EnableMetrics)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_InvalidBoolFallsBackToDefault(t *testing.T) {
	t.Setenv("ENABLE_CORS", "not-a-bool")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.EnableCORS)
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\nflow_name: Demo Flow\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_ADDRESS", ":7000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// File keys win; env values survive for keys the file omits
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "Demo Flow", cfg.FlowName)
	assert.Equal(t, ":7000", cfg.ServerAddress)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [oops"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadConfig()

	assert.Error(t, err)
}
