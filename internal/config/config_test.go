package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevModeDefaults(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	t.Setenv("API_KEY", "")
	t.Setenv("LEDGER_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
	assert.Equal(t, DefaultLedgerTimeout, cfg.LedgerTimeout)
	assert.Equal(t, DefaultSessionCacheSize, cfg.SessionCacheSize)
	assert.True(t, cfg.DevMode)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("DEV_MODE", "false")
	t.Setenv("API_KEY", "")
	t.Setenv("LEDGER_BASE_URL", "https://api.example.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadRequiresLedgerBaseURL(t *testing.T) {
	t.Setenv("DEV_MODE", "false")
	t.Setenv("API_KEY", "secret")
	t.Setenv("LEDGER_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEDGER_BASE_URL")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", StoreBackendMemory)
	t.Setenv("LEDGER_TIMEOUT", "3s")
	t.Setenv("SESSION_CACHE_SIZE", "123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreBackendMemory, cfg.StoreBackend)
	assert.Equal(t, 3*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, 123, cfg.SessionCacheSize)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "user",
		DBPassword: "pass",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "tapcore",
	}

	assert.Equal(t, "postgres://user:pass@db:5433/tapcore?sslmode=disable", cfg.GetDBConnString())
}

// TestGetEnvAsInt tests the getEnvAsInt helper function
func TestGetEnvAsInt(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		result := getEnvAsInt("TEST_INT_VAR_UNSET", 42)
		assert.Equal(t, 42, result)
	})

	t.Run("parses valid integer from env var", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "100")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 100, result)
	})

	t.Run("returns default for invalid integer", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "not-a-number")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 42, result, "Should return default for invalid integer")
	})
}

// TestGetEnvAsDuration tests the getEnvAsDuration helper function
func TestGetEnvAsDuration(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		result := getEnvAsDuration("TEST_DUR_VAR_UNSET", time.Minute)
		assert.Equal(t, time.Minute, result)
	})

	t.Run("parses valid duration from env var", func(t *testing.T) {
		t.Setenv("TEST_DUR_VAR", "1500ms")
		result := getEnvAsDuration("TEST_DUR_VAR", time.Minute)
		assert.Equal(t, 1500*time.Millisecond, result)
	})

	t.Run("returns default for invalid duration", func(t *testing.T) {
		t.Setenv("TEST_DUR_VAR", "soon")
		result := getEnvAsDuration("TEST_DUR_VAR", time.Minute)
		assert.Equal(t, time.Minute, result)
	})
}

// TestGetEnvAsBool tests the getEnvAsBool helper function
func TestGetEnvAsBool(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		result := getEnvAsBool("TEST_BOOL_VAR_UNSET", true)
		assert.True(t, result)
	})

	t.Run("parses valid boolean from env var", func(t *testing.T) {
		t.Setenv("TEST_BOOL_VAR", "true")
		result := getEnvAsBool("TEST_BOOL_VAR", false)
		assert.True(t, result)
	})

	t.Run("returns default for invalid boolean", func(t *testing.T) {
		t.Setenv("TEST_BOOL_VAR", "maybe")
		result := getEnvAsBool("TEST_BOOL_VAR", false)
		assert.False(t, result)
	})
}
