package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
)

func TestInitWritesParseableConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, initCmd.RunE(initCmd, nil))

	data, err := os.ReadFile("config.yaml")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "fs", cfg.Store.Driver)
	assert.Equal(t, 8000, cfg.Server.Port)

	// Refuses to clobber without --force.
	err = initCmd.RunE(initCmd, nil)
	assert.Error(t, err)

	initForce = true
	defer func() { initForce = false }()
	assert.NoError(t, initCmd.RunE(initCmd, nil))
}
