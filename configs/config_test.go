package config

import (
	"portrait-backend/internal/common/enum"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STATUS_POLL_LIMIT", "15")
	t.Setenv("DB_CACHE", "true")

	cfg := &Config{}
	require.NoError(t, load(cfg))

	assert.Equal(t, enum.PRODUCTION, cfg.AppEnv)
	assert.Equal(t, 15, cfg.StatusPollLimit)
	assert.True(t, cfg.DBCache)
	assert.Equal(t, "gateway", cfg.PaymentProvider)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, 8080, cfg.AppPort)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		t.Setenv("APP_PORT", "eighty")
		assert.ErrorContains(t, load(&Config{}), "APP_PORT")
	})

	t.Run("bool", func(t *testing.T) {
		t.Setenv("DB_CACHE", "maybe")
		assert.ErrorContains(t, load(&Config{}), "DB_CACHE")
	})
}

func TestGetEnv_RejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	_, err := GetEnv()

	assert.ErrorContains(t, err, "APP_ENV")
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, (&Config{AppEnv: enum.DEVELOPMENT}).IsDevelopment())
	assert.False(t, (&Config{AppEnv: enum.LOCAL}).IsDevelopment())
	assert.False(t, (&Config{AppEnv: enum.STAGING}).IsDevelopment())
}
