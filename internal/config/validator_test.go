package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "tapcore")
	t.Setenv("API_KEY", "secret")
	t.Setenv("LEDGER_BASE_URL", "https://api.example.com")
	t.Setenv("LEDGER_TOKEN", "token")
}

func TestValidateEnv(t *testing.T) {
	t.Run("passes with all required vars", func(t *testing.T) {
		setRequiredEnv(t)
		assert.NoError(t, ValidateEnv())
	})

	t.Run("fails without schema version", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ENV_SCHEMA_VERSION", "")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION")
	})

	t.Run("fails on schema version mismatch", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ENV_SCHEMA_VERSION", "0.9")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mismatch")
	})

	t.Run("reports missing vars", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LEDGER_TOKEN", "")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LEDGER_TOKEN")
	})
}

func TestValidateEnvWithWarnings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORE_BACKEND", StoreBackendMemory)

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "memory")
}
