package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "partner-hub", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "127.0.0.1:9999", cfg.StubProvider.Addr())
	assert.Equal(t, 60, cfg.StubProvider.TokenTTLMinutes)
	assert.Equal(t, "u1", cfg.Session.CurrentUserID)
	assert.False(t, cfg.Provider.Configured())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "partner-hub-test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTH_PROVIDER_URL", "https://auth.example.com")
	t.Setenv("AUTH_PROVIDER_ANON_KEY", "anon-key")
	t.Setenv("STUB_PROVIDER_PORT", "8123")
	t.Setenv("SESSION_CURRENT_USER_ID", "u42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "partner-hub-test", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Provider.Configured())
	assert.Equal(t, "127.0.0.1:8123", cfg.StubProvider.Addr())
	assert.Equal(t, "u42", cfg.Session.CurrentUserID)
}

func TestProviderConfiguredNeedsBothValues(t *testing.T) {
	assert.False(t, ProviderConfig{URL: "https://auth.example.com"}.Configured())
	assert.False(t, ProviderConfig{AnonKey: "anon"}.Configured())
	assert.False(t, ProviderConfig{URL: "  ", AnonKey: "anon"}.Configured())
	assert.True(t, ProviderConfig{URL: "https://auth.example.com", AnonKey: "anon"}.Configured())
}

func TestLoadRejectsNonPositiveTokenTTL(t *testing.T) {
	t.Setenv("STUB_PROVIDER_TOKEN_TTL_MINUTES", "-5")

	_, err := Load()
	assert.Error(t, err)
}
