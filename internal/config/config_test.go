package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv shields the tests from configuration present in the ambient
// process environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "HTTP_ADDR",
		"OPENAI_API_KEY", "OPENAI_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL",
		"PROVIDER_TIMEOUT", "STALE_WINDOW", "CACHE_CAPACITY", "REFRESH_INTERVAL",
		"TELEGRAM_TOKEN", "TELEGRAM_ADMIN_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "wordbank.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 24*time.Hour, cfg.StaleWindow)
	assert.EqualValues(t, 1000, cfg.CacheCapacity)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "/data/categories.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STALE_WINDOW", "1h")
	t.Setenv("CACHE_CAPACITY", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/categories.db", cfg.DatabaseURL)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, time.Hour, cfg.StaleWindow)
	assert.EqualValues(t, 50, cfg.CacheCapacity)
}

func TestLoad_RejectsBadRanges(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_CAPACITY", "0")
	_, err := Load()
	assert.Error(t, err)
}
