package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROPERTY_API_URL", "APP_NAME", "PORT", "STDOUT_LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
		"FLUENTBIT_ENABLED", "FLUENTBIT_HOST", "FLUENTBIT_PORT", "FLUENTBIT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.ApiClient.BaseURL)
	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultPort, cfg.Rest.PORT)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Rest.CORSAllowedOrigins)
	assert.False(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "info", cfg.StdoutLogger.Level)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PROPERTY_API_URL=https://api.example.com/api/\n" +
		"PORT=9000\n" +
		"CORS_ALLOWED_ORIGINS=http://a.test, ,http://b.test\n" +
		"FLUENTBIT_ENABLED=true\n" +
		"FLUENTBIT_HOST=fluent-bit\n" +
		"FLUENTBIT_PORT=not-a-number\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.ApiClient.BaseURL)
	assert.Equal(t, "9000", cfg.Rest.PORT)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CORSAllowedOrigins)
	assert.True(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "fluent-bit", cfg.FluentBit.Host)
	assert.Equal(t, 24224, cfg.FluentBit.Port)
	assert.Equal(t, "info", cfg.FluentBit.Level)
}

func TestLoadConfigDisablesFluentWithoutHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLUENTBIT_ENABLED", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfigRejectsRelativeBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROPERTY_API_URL", "/api")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
