package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gotlmem.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "en", cfg.SourceLang)
	assert.Equal(t, "es", cfg.TargetLang)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, "500ms", cfg.BatchDelay.String())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GOTLMEM_DB_PATH", "/tmp/x.db")
	t.Setenv("GOTLMEM_TARGET_LANG", "fr")
	t.Setenv("GOTLMEM_BATCH_SIZE", "25")
	t.Setenv("GOTLMEM_BATCH_DELAY", "2s")
	t.Setenv("GOTLMEM_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "fr", cfg.TargetLang)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, "2s", cfg.BatchDelay.String())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsSameLanguages(t *testing.T) {
	t.Setenv("GOTLMEM_SOURCE_LANG", "es")
	t.Setenv("GOTLMEM_TARGET_LANG", "es")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadBatchSize(t *testing.T) {
	t.Setenv("GOTLMEM_BATCH_SIZE", "-1")

	_, err := Load()
	assert.Error(t, err)
}
