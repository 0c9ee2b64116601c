package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBkashEnv(t *testing.T) {
	t.Setenv("DB_NAME", "brave")
	t.Setenv("BKASH_GRANT_TOKEN_URL", "https://bkash.test/token/grant")
	t.Setenv("BKASH_CREATE_PAYMENT_URL", "https://bkash.test/create")
	t.Setenv("BKASH_EXECUTE_PAYMENT_URL", "https://bkash.test/execute")
	t.Setenv("BKASH_API_KEY", "key")
	t.Setenv("BKASH_SECRET_KEY", "secret")
	t.Setenv("BKASH_USERNAME", "user")
	t.Setenv("BKASH_PASSWORD", "pass")
}

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults apply without a .env file", func(t *testing.T) {
		setBkashEnv(t)

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "4000", config.App.Port)
		assert.Equal(t, "BDT", config.Bkash.Currency)
		assert.Equal(t, 30*time.Second, config.Bkash.Timeout)
		assert.Equal(t, 30*time.Minute, config.Bkash.SessionTTL)
		assert.Equal(t, "http://localhost:5173", config.HTTP.FrontendURL)
		assert.Equal(t, "https://bkash.test/create", config.Bkash.CreatePaymentURL)
	})

	t.Run(".env values are read and environment overrides them", func(t *testing.T) {
		setBkashEnv(t)
		require.NoError(t, os.WriteFile(".env", []byte("PORT=5000\nFRONTEND_URL=https://brave.test\n"), 0o600))
		t.Cleanup(func() { os.Remove(".env") })
		t.Setenv("PORT", "6000")

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "6000", config.App.Port)
		assert.Equal(t, "https://brave.test", config.HTTP.FrontendURL)
	})

	t.Run("missing gateway settings", func(t *testing.T) {
		t.Setenv("DB_NAME", "brave")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BKASH_GRANT_TOKEN_URL")
	})
}
