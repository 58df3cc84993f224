// Package config loads configuration from GOTLMEM_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration.
type Config struct {
	DBPath     string        `env:"GOTLMEM_DB_PATH" envDefault:"gotlmem.db"`
	ListenAddr string        `env:"GOTLMEM_LISTEN_ADDR" envDefault:":8080"`
	SourceLang string        `env:"GOTLMEM_SOURCE_LANG" envDefault:"en"`
	TargetLang string        `env:"GOTLMEM_TARGET_LANG" envDefault:"es"`
	APIKey     string        `env:"GOTLMEM_API_KEY"`
	BaseURL    string        `env:"GOTLMEM_BASE_URL"`
	Model      string        `env:"GOTLMEM_MODEL"`
	RedisURL   string        `env:"GOTLMEM_REDIS_URL"`
	RedisTTL   int           `env:"GOTLMEM_REDIS_TTL" envDefault:"0"`
	BatchSize  int           `env:"GOTLMEM_BATCH_SIZE" envDefault:"10"`
	BatchDelay time.Duration `env:"GOTLMEM_BATCH_DELAY" envDefault:"500ms"`
	LogLevel   string        `env:"GOTLMEM_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SourceLang == cfg.TargetLang {
		return nil, fmt.Errorf("source and target language are both %q", cfg.SourceLang)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	return cfg, nil
}

// SlogLevel maps the configured log level name onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
