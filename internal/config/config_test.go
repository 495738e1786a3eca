package config

import (
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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 98.0, cfg.Lunar.FullMoonThreshold)
	assert.Equal(t, 29.530588853, cfg.Lunar.SynodicMonthDays)
	assert.Equal(t, "2000-01-06T18:14:00Z", cfg.Lunar.ReferenceNewMoon)
	assert.Equal(t, 1, cfg.Analysis.MinBucketSize)
	assert.Equal(t, []string{"bybit", "binance", "coingecko", "demo"}, cfg.DataSource.Providers)
	assert.Equal(t, 30*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.DataSource.RateLimitDelay)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
lunar:
  full_moon_threshold: 95
analysis:
  min_bucket_size: 3
data_source:
  providers: [coingecko, demo]
  symbols: [Ethereum]
  timeout: 5s
log:
  level: debug
`)
	t.Setenv("FULL_MOON_THRESHOLD", "97.5")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 97.5, cfg.Lunar.FullMoonThreshold)
	assert.Equal(t, 3, cfg.Analysis.MinBucketSize)
	assert.Equal(t, []string{"coingecko", "demo"}, cfg.DataSource.Providers)
	assert.Equal(t, []string{"Ethereum"}, cfg.DataSource.Symbols)
	assert.Equal(t, 5*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "token", cfg.Telegram.BotToken)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "lunar: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"threshold too high", func(c *Config) { c.Lunar.FullMoonThreshold = 101 }, "lunar.full_moon_threshold"},
		{"threshold unreachable", func(c *Config) { c.Lunar.FullMoonThreshold = 100 }, "lunar.full_moon_threshold"},
		{"bad reference", func(c *Config) { c.Lunar.ReferenceNewMoon = "yesterday" }, "lunar.reference_new_moon"},
		{"negative synodic", func(c *Config) { c.Lunar.SynodicMonthDays = -1 }, "lunar.synodic_month_days"},
		{"unknown provider", func(c *Config) { c.DataSource.Providers = []string{"kraken"} }, "unknown provider"},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }, "telegram.bot_token"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"small lookback", func(c *Config) { c.Analysis.LookbackDays = 1 }, "analysis.lookback_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
