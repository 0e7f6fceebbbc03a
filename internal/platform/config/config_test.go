package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(50<<20), cfg.DocumentMaxSizeBytes)
	assert.Equal(t, 15*time.Minute, cfg.OverdueSweepInterval)
	assert.Equal(t, 7, cfg.RiskDueSoonDays)
	assert.Equal(t, 30, cfg.UpcomingDeadlineDays)
	assert.Equal(t, "60-M", cfg.MutationRateLimit)
	assert.Empty(t, cfg.DocumentAllowedTypes)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_BACKEND", "bogus")
	t.Setenv("PAYMENT_TIMEOUT", "not-a-duration")
	t.Setenv("OVERDUE_SWEEP_INTERVAL", "0")
	t.Setenv("RISK_DUE_SOON_DAYS", "3")
	t.Setenv("DOCUMENT_ALLOWED_TYPES", "application/pdf, text/plain ,")
	t.Setenv("DOCUMENT_BASE_URL", "https://files.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.Equal(t, 30*time.Second, cfg.PaymentTimeout)
	assert.Zero(t, cfg.OverdueSweepInterval)
	assert.Equal(t, 3, cfg.RiskDueSoonDays)
	assert.Equal(t, []string{"application/pdf", "text/plain"}, cfg.DocumentAllowedTypes)
	assert.Equal(t, "https://files.example.com", cfg.DocumentBaseURL)
}
