package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Bank.URL)
	assert.True(t, cfg.Seed.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ATM_SERVER_PORT", "9090")
	t.Setenv("ATM_BANK_URL", "http://localhost:8080")
	t.Setenv("ATM_SEED_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Bank.URL)
	assert.False(t, cfg.Seed.Enabled)
}
