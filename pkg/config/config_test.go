package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "auto", c.LLM.Mode)
	assert.Equal(t, 60*time.Second, c.LLM.Timeout)
	assert.Equal(t, "TRAXOR_LLM_API_KEY", c.LLM.CredentialEnv)
	assert.Equal(t, "SOL", c.Signal.DefaultSymbol)
	assert.Equal(t, 50, c.Signal.InsightMinLength)
	assert.Equal(t, 3, c.Signal.SourceCount)
	assert.Equal(t, 0.7, c.LLM.Temperature)
	assert.Equal(t, 800, c.LLM.MaxTokens)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	c, err := Parse([]byte("server:\n  port: 9090\nsignal:\n  default_symbol: BTC\n"))
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "BTC", c.Signal.DefaultSymbol)
	assert.Equal(t, 50, c.Signal.InsightMinLength)
}

func TestValidateRejectsOutOfRangeTimeout(t *testing.T) {
	for _, d := range []string{"10s", "5m"} {
		_, err := Parse([]byte("llm:\n  timeout: " + d + "\n"))
		assert.Error(t, err, d)
	}
	_, err := Parse([]byte("llm:\n  timeout: 120s\n"))
	assert.NoError(t, err)
}

func TestValidateRejectsBadEnums(t *testing.T) {
	cases := []string{
		"llm:\n  mode: remote\n",
		"cache:\n  backend: disk\n",
		"log:\n  level: loud\n",
		"signal:\n  default_symbol: sol\n",
		"kafka:\n  enabled: true\n  brokers: []\n",
	}
	for _, y := range cases {
		_, err := Parse([]byte(y))
		assert.Error(t, err, y)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":          "7000",
		"LLM_MODE":      "mock",
		"REDIS_ADDR":    "cache.local:6380",
		"CACHE_BACKEND": "layered",
		"KAFKA_BROKERS": "a:9092,b:9092",
		"LOG_LEVEL":     "debug",
	}
	c := Default()
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, "mock", c.LLM.Mode)
	assert.Equal(t, "cache.local:6380", c.Cache.Redis.Addr())
	assert.Equal(t, "layered", c.Cache.Backend)
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.Kafka.Brokers)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, "debug", c.Log.Level)
	require.NoError(t, c.Validate())

	bad := Default()
	assert.Error(t, bad.applyEnv(func(k string) string {
		if k == "PORT" {
			return "eighty"
		}
		return ""
	}))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\nmarket:\n  watchlist: [BTC, ETH]\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, []string{"BTC", "ETH"}, c.Market.Watchlist)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
