package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 7, cfg.RefillDaysThreshold)
	assert.Equal(t, 6*time.Hour, cfg.RefillScanInterval)
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("REFILL_DAYS_THRESHOLD", "14")
	t.Setenv("REFILL_SCAN_INTERVAL", "1h")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, 14, cfg.RefillDaysThreshold)
	assert.Equal(t, time.Hour, cfg.RefillScanInterval)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("REFILL_DAYS_THRESHOLD", "soon")
	t.Setenv("REFILL_SCAN_INTERVAL", "whenever")

	cfg := Load()

	assert.Equal(t, 7, cfg.RefillDaysThreshold)
	assert.Equal(t, 6*time.Hour, cfg.RefillScanInterval)
}
