package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 200, cfg.MaxHistory)
	assert.Equal(t, "anonymous", cfg.AnonymousUserID)
	assert.NotEmpty(t, cfg.FallbackResponse)
	assert.True(t, cfg.CacheEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9100")
	t.Setenv("LLM_MODEL", "mistral:7b")
	t.Setenv("MAX_HISTORY", "50")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("ANONYMOUS_USER_ID", "guest")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.ListenAddr)
	assert.Equal(t, "mistral:7b", cfg.LLMModel)
	assert.Equal(t, 50, cfg.MaxHistory)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "45s", cfg.LLMTimeout.String())
	assert.Equal(t, "guest", cfg.AnonymousUserID)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_HISTORY", "many")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.MaxHistory = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.FallbackResponse = ""
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.CacheEnabled = true
	cfg.CacheSize = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.CacheEnabled = false
	cfg.CacheSize = 0
	assert.NoError(t, cfg.Validate())
}
