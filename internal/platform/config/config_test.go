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
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, time.Hour, cfg.RateCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RateSourceTimeout)
	assert.Equal(t, 3, cfg.RateSourceRetries)
	assert.Equal(t, "100-M", cfg.APIRateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BASE_CURRENCY", "eur")
	t.Setenv("RATE_CACHE_TTL", "15m")
	t.Setenv("RATE_SOURCE_TIMEOUT", "nonsense")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, 15*time.Minute, cfg.RateCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RateSourceTimeout, "invalid durations fall back to the default")
}

func TestLoadConfig_Rejects(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := LoadConfig()
	assert.Error(t, err)

	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig()
	assert.Error(t, err, "production requires an explicit JWT secret")
}
