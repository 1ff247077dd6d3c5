package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty dir so no stray config.yaml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(4000), cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 0.1, cfg.Anthropic.Temperature, 0.0001)
	assert.Equal(t, 120*time.Second, cfg.Anthropic.Timeout())
	assert.Equal(t, "local", cfg.OCR.Provider)
	assert.Equal(t, 15000, cfg.OCR.MaxTextLen)
	assert.Equal(t, "fs", cfg.Store.Driver)
	assert.Equal(t, "results", cfg.Store.ReportsDir)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
anthropic:
  model: claude-haiku-4-5-20251001
  timeout_secs: 30
store:
  driver: sqlite
  database_url: /tmp/test.db
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 30*time.Second, cfg.Anthropic.Timeout())
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, int64(4000), cfg.Anthropic.MaxTokens)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shout", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
