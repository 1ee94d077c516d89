package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenLifespan)
	assert.Equal(t, int64(5<<20), cfg.App.MaxUploadBytes)
	assert.Equal(t, "media.events", cfg.Kafka.MediaTopic)
	assert.Equal(t, "your.email@example.com", cfg.Account.Email)
	assert.Empty(t, cfg.App.TrustedProxies)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  port: "8080"
db:
  driver: memory
account:
  default_name: Ada Lovelace
auth:
  token_lifespan: 1h
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "Ada Lovelace", cfg.Account.Name)
	assert.Equal(t, time.Hour, cfg.Auth.TokenLifespan)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.App.TrustedProxies)
}
