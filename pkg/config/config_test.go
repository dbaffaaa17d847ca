package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"polygon", "yahoo", "fmp"}, cfg.Quote.Priority)
	assert.Equal(t, 10*time.Second, cfg.Quote.Timeout)
	assert.Equal(t, 30, cfg.Volatility.HistoryDays)
	assert.Equal(t, 5, cfg.Volatility.MinBars)
	assert.Equal(t, "https://api.polygon.io", cfg.Polygon.BaseURL)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Yahoo.BaseURL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoadCustomPriority(t *testing.T) {
	path := writeConfig(t, `
environment: test
quote:
  priority: [yahoo, fmp]
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"yahoo", "fmp"}, cfg.Quote.Priority)
	assert.Equal(t, 3*time.Second, cfg.Quote.Timeout)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, `
environment: test
quote:
  priority: [polygon, bloomberg]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bloomberg")
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadCacheBackend(t *testing.T) {
	path := writeConfig(t, `
environment: test
cache:
  enabled: true
  backend: memcached
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	t.Setenv("POLYGON_API_KEY", "pk-123")
	t.Setenv("FMP_API_KEY", "fk-456")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "pk-123", cfg.Polygon.APIKey)
	assert.Equal(t, "fk-456", cfg.FMP.APIKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadKafkaEnabledNeedsBrokers(t *testing.T) {
	path := writeConfig(t, `
environment: test
kafka:
  enabled: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}
