package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "streetsmart", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 2*time.Second, cfg.PaymentProcessingDelay)
	assert.Equal(t, 5*time.Second, cfg.PaymentResetDelay)
	assert.Equal(t, 0.9, cfg.PaymentSuccessRate)
	assert.True(t, cfg.SeedSampleData)
	assert.True(t, cfg.VoiceEnabled)
	assert.Equal(t, "en-IN", cfg.Locale)
	assert.Empty(t, cfg.GRPCAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("PAYMENT_PROCESSING_DELAY", "150ms")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1")
	t.Setenv("VOICE_ENABLED", "false")
	t.Setenv("TIMEZONE", "Asia/Kolkata")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 150*time.Millisecond, cfg.PaymentProcessingDelay)
	assert.Equal(t, 1.0, cfg.PaymentSuccessRate)
	assert.False(t, cfg.VoiceEnabled)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("PAYMENT_RESET_DELAY", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1.5")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MYSQL_DSN")
	assert.Contains(t, err.Error(), "PAYMENT_SUCCESS_RATE")
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestLocation_DefaultsToLocal(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
