package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DB_CONNECTION_STRING", "")
	t.Setenv("CLIENT_REMOVAL_DELAY", "not-a-duration")
	t.Setenv("OTEL_ENABLED", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.App.Port)
	assert.True(t, cfg.UsesMemoryStore())
	assert.False(t, cfg.App.OtelEnabled)
	assert.Equal(t, 300*time.Millisecond, cfg.Client.RemovalDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("DB_CONNECTION_STRING", "host=localhost dbname=notes")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("CLIENT_REQUEST_TIMEOUT", "2s")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.UsesMemoryStore())
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, 2*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, "nats://localhost:4222", cfg.Events.NatsURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Events.RedisURL)
}
