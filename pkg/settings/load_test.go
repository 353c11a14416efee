package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Queue.Capacity)
	assert.Equal(t, 2, cfg.Driver.Producers)
	assert.Equal(t, 2, cfg.Driver.Consumers)
	assert.Equal(t, 10, cfg.Driver.ItemsPerProducer)
	assert.Equal(t, 100*time.Millisecond, cfg.Driver.MinDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Driver.MaxDelay)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, 0, cfg.Server.Port)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
queue:
  capacity: 2
driver:
  producers: 4
  consumers: 3
  items_per_producer: 7
  min_delay: 0s
  max_delay: 5ms
logger:
  log_level: debug
server:
  port: 8089
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Queue.Capacity)
	assert.Equal(t, 4, cfg.Driver.Producers)
	assert.Equal(t, 3, cfg.Driver.Consumers)
	assert.Equal(t, 7, cfg.Driver.ItemsPerProducer)
	assert.Equal(t, time.Duration(0), cfg.Driver.MinDelay)
	assert.Equal(t, 5*time.Millisecond, cfg.Driver.MaxDelay)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 8089, cfg.Server.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BQUEUE_QUEUE_CAPACITY", "9")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Queue.Capacity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadConfig))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero_capacity", "queue:\n  capacity: 0\n"},
		{"negative_capacity", "queue:\n  capacity: -3\n"},
		{"no_producers", "driver:\n  producers: 0\n"},
		{"no_consumers", "driver:\n  consumers: 0\n"},
		{"max_below_min", "driver:\n  min_delay: 1s\n  max_delay: 10ms\n"},
		{"bad_log_level", "logger:\n  log_level: loud\n"},
		{"bad_port", "server:\n  port: 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Queue.Capacity)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
}
