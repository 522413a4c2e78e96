package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.PriceTTL)
	assert.Equal(t, time.Hour, cfg.StatsTTL)
	assert.Equal(t, cfg.PriceTTL, cfg.RefreshInterval, "refresh cadence should match the price TTL")
	assert.Equal(t, StatsProviderGoogle, cfg.StatsProvider)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PRICE_TTL", "30s")
	t.Setenv("STATS_PROVIDER", "static")
	t.Setenv("STATS_DB_PATH", "/tmp/stats.db")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.PriceTTL)
	assert.Equal(t, StatsProviderStatic, cfg.StatsProvider)
	assert.True(t, cfg.LogPretty)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("PRICE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.PriceTTL)
}

func TestValidateRejectsUnknownStatsProvider(t *testing.T) {
	t.Setenv("STATS_PROVIDER", "bloomberg")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATS_PROVIDER")
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidateRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "-15s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}
