package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without environment", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), *cfg)
	})

	t.Run("Should override values from environment", func(t *testing.T) {
		t.Setenv("ISIMM_SERVER_ADDR", ":9090")
		t.Setenv("ISIMM_REDIS_DB", "3")
		t.Setenv("ISIMM_LOG_DEVELOPMENT", "true")
		t.Setenv("ISIMM_CLIENT_BASE_URL", "http://backend:8080")
		t.Setenv("ISIMM_CLIENT_TIMEOUT", "2s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.True(t, cfg.Log.Development)
		assert.Equal(t, "http://backend:8080", cfg.Client.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
	})

	t.Run("Should reject invalid server mode", func(t *testing.T) {
		t.Setenv("ISIMM_SERVER_MODE", "production")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestTransformEnv(t *testing.T) {
	key, value := transformEnv("ISIMM_REDIS_PASSWORD", "secret")
	assert.Equal(t, "redis.password", key)
	assert.Equal(t, "secret", value)
}
