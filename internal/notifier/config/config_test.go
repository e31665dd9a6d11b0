package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: notifier-test
storage:
  alerts: sqlite
push:
  transport: webhook
  webhook_url: http://localhost:9000/push
market_data:
  cache_duration: 30s
`), 0o600))
	t.Setenv("DISPATCHER_MAX_CONCURRENCY", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "notifier-test", cfg.App.Name)
	assert.Equal(t, StorageSQLite, cfg.Storage.Alerts)
	assert.Equal(t, StorageMemory, cfg.Storage.Devices)
	assert.Equal(t, TransportWebhook, cfg.Push.Transport)
	assert.Equal(t, "http://localhost:9000/push", cfg.Push.WebhookURL)
	assert.Equal(t, 30*time.Second, cfg.MarketData.CacheDuration)
	assert.Equal(t, 8, cfg.Dispatcher.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.Dispatcher.DeliveryTimeout)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Alerts)
	assert.Equal(t, TransportLog, cfg.Push.Transport)
	assert.Equal(t, 32, cfg.Dispatcher.MaxConcurrency)
	assert.Equal(t, "@every 1m", cfg.Monitor.CronExpression)
	assert.False(t, cfg.Monitor.Enabled)
}
