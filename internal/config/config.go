package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Lunar holds the moon phase model parameters.
type Lunar struct {
	FullMoonThreshold float64 `yaml:"full_moon_threshold"`
	SynodicMonthDays  float64 `yaml:"synodic_month_days"`
	ReferenceNewMoon  string  `yaml:"reference_new_moon"`
}

// ReferenceTime parses ReferenceNewMoon as RFC 3339.
func (l Lunar) ReferenceTime() (time.Time, error) {
	return time.Parse(time.RFC3339, l.ReferenceNewMoon)
}

// Analysis holds correlation analysis parameters.
type Analysis struct {
	MinBucketSize int `yaml:"min_bucket_size"`
	LookbackDays  int `yaml:"lookback_days"`
	MaxDataPoints int `yaml:"max_data_points"`
}

// DataSource holds price provider settings.
type DataSource struct {
	Providers        []string      `yaml:"providers"`
	Symbols          []string      `yaml:"symbols"`
	BybitAPIKey      string        `yaml:"bybit_api_key"`
	BybitAPISecret   string        `yaml:"bybit_api_secret"`
	BinanceAPIKey    string        `yaml:"binance_api_key"`
	BinanceAPISecret string        `yaml:"binance_api_secret"`
	CoinGeckoBaseURL string        `yaml:"coingecko_base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	RateLimitDelay   time.Duration `yaml:"rate_limit_delay"`
	MaxRetries       int           `yaml:"max_retries"`
}

// Config holds all application configuration.
type Config struct {
	Lunar      Lunar      `yaml:"lunar"`
	Analysis   Analysis   `yaml:"analysis"`
	DataSource DataSource `yaml:"data_source"`
	Schedule   struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BYBIT_API_KEY"); v != "" {
		cfg.DataSource.BybitAPIKey = v
	}
	if v := os.Getenv("BYBIT_API_SECRET"); v != "" {
		cfg.DataSource.BybitAPISecret = v
	}
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.DataSource.BinanceAPIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		cfg.DataSource.BinanceAPISecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FULL_MOON_THRESHOLD"); v != "" {
		if th, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Lunar.FullMoonThreshold = th
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = strings.Split(v, ",")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Lunar.FullMoonThreshold == 0 {
		cfg.Lunar.FullMoonThreshold = 98.0
	}
	if cfg.Lunar.SynodicMonthDays == 0 {
		cfg.Lunar.SynodicMonthDays = 29.530588853
	}
	if cfg.Lunar.ReferenceNewMoon == "" {
		cfg.Lunar.ReferenceNewMoon = "2000-01-06T18:14:00Z"
	}
	if cfg.Analysis.MinBucketSize == 0 {
		cfg.Analysis.MinBucketSize = 1
	}
	if cfg.Analysis.LookbackDays == 0 {
		cfg.Analysis.LookbackDays = 365
	}
	if cfg.Analysis.MaxDataPoints == 0 {
		cfg.Analysis.MaxDataPoints = 1000
	}
	if len(cfg.DataSource.Providers) == 0 {
		cfg.DataSource.Providers = []string{"bybit", "binance", "coingecko", "demo"}
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"Bitcoin"}
	}
	if cfg.DataSource.CoinGeckoBaseURL == "" {
		cfg.DataSource.CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.DataSource.RateLimitDelay == 0 {
		cfg.DataSource.RateLimitDelay = 100 * time.Millisecond
	}
	if cfg.DataSource.MaxRetries == 0 {
		cfg.DataSource.MaxRetries = 3
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 1 * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

var validProviders = map[string]bool{"bybit": true, "binance": true, "coingecko": true, "demo": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Lunar.FullMoonThreshold <= 0 || c.Lunar.FullMoonThreshold >= 100 {
		return fmt.Errorf("lunar.full_moon_threshold must be in (0, 100)")
	}
	if c.Lunar.SynodicMonthDays <= 0 {
		return fmt.Errorf("lunar.synodic_month_days must be positive")
	}
	if _, err := c.Lunar.ReferenceTime(); err != nil {
		return fmt.Errorf("lunar.reference_new_moon must be RFC 3339: %w", err)
	}
	if c.Analysis.MinBucketSize < 1 {
		return fmt.Errorf("analysis.min_bucket_size must be at least 1")
	}
	if c.Analysis.LookbackDays < 2 {
		return fmt.Errorf("analysis.lookback_days must be at least 2")
	}
	if c.Analysis.MaxDataPoints < c.Analysis.LookbackDays {
		return fmt.Errorf("analysis.max_data_points must not be below analysis.lookback_days")
	}
	for _, p := range c.DataSource.Providers {
		if !validProviders[p] {
			return fmt.Errorf("data_source.providers: unknown provider %q", p)
		}
	}
	if c.DataSource.MaxRetries < 0 {
		return fmt.Errorf("data_source.max_retries must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}
