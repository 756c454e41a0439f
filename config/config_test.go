package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"API_URL", "DELIVERY_CHARGE", "CONFIRM_DELAY", "REVIEWS_LIMIT", "AUTO_MIGRATE", "REDIS_ADDR", "ADMIN_ID"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001", cfg.API.BaseURL)
	assert.Equal(t, int64(30), cfg.Checkout.DeliveryCharge)
	assert.Equal(t, 3*time.Second, cfg.Checkout.ConfirmDelay)
	assert.Equal(t, 10, cfg.API.ReviewsLimit)
	assert.False(t, cfg.HTTP.AutoMigrate)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Zero(t, cfg.Telegram.AdminID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_URL", "https://api.example.com/")
	t.Setenv("DELIVERY_CHARGE", "45")
	t.Setenv("CONFIRM_DELAY", "500ms")
	t.Setenv("AUTO_MIGRATE", "TRUE")
	t.Setenv("ADMIN_ID", "4242")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, int64(45), cfg.Checkout.DeliveryCharge)
	assert.Equal(t, 500*time.Millisecond, cfg.Checkout.ConfirmDelay)
	assert.True(t, cfg.HTTP.AutoMigrate)
	assert.Equal(t, int64(4242), cfg.Telegram.AdminID)
}

func TestGetDurationRejectsGarbage(t *testing.T) {
	t.Setenv("X_DELAY", "soon")
	assert.Equal(t, time.Second, getDuration("X_DELAY", time.Second))
	t.Setenv("X_DELAY", "-2s")
	assert.Equal(t, time.Second, getDuration("X_DELAY", time.Second))
}
