package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("DECIDIR_PRIVATE_KEY", "priv")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "sandbox", cfg.Decidir.Environment)
	assert.Equal(t, "/api/v2/", cfg.Decidir.Path)
	assert.Equal(t, 900, cfg.Decidir.Timeout)
	assert.Equal(t, "iso-8859-1", cfg.Decidir.Charset)
	assert.Equal(t, SecretsBackendNone, cfg.Secrets.Backend)
	assert.Equal(t, 0, cfg.Metrics.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.False(t, cfg.Logger.Development)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("DECIDIR_ENVIRONMENT", "qa")
	t.Setenv("DECIDIR_PRIVATE_KEY", "priv")
	t.Setenv("DECIDIR_PUBLIC_KEY", "pub")
	t.Setenv("DECIDIR_TIMEOUT", "30")
	t.Setenv("DECIDIR_CHARSET", "utf-8")
	t.Setenv("METRICS_PORT", "9090")
	t.Setenv("LOG_DEVELOPMENT", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "qa", cfg.Decidir.Environment)
	assert.Equal(t, "pub", cfg.Decidir.PublicKey)
	assert.Equal(t, 30, cfg.Decidir.Timeout)
	assert.Equal(t, "utf-8", cfg.Decidir.Charset)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.True(t, cfg.Logger.Development)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DECIDIR_PRIVATE_KEY", "priv")
	t.Setenv("DECIDIR_TIMEOUT", "soon")
	t.Setenv("LOG_DEVELOPMENT", "maybe")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Decidir.Timeout)
	assert.False(t, cfg.Logger.Development)
}

func TestLoadFromEnv_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "private key required without secrets backend",
			env:     map[string]string{},
			wantErr: "DECIDIR_PRIVATE_KEY is required",
		},
		{
			name:    "unknown secrets backend",
			env:     map[string]string{"SECRETS_BACKEND": "gcp"},
			wantErr: "unsupported SECRETS_BACKEND",
		},
		{
			name:    "negative timeout",
			env:     map[string]string{"DECIDIR_PRIVATE_KEY": "priv", "DECIDIR_TIMEOUT": "-1"},
			wantErr: "DECIDIR_TIMEOUT must be positive",
		},
		{
			name:    "unknown charset",
			env:     map[string]string{"DECIDIR_PRIVATE_KEY": "priv", "DECIDIR_CHARSET": "ebcdic"},
			wantErr: "unsupported DECIDIR_CHARSET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DECIDIR_PRIVATE_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromEnv()

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromEnv_SecretsBackendWithoutKey(t *testing.T) {
	t.Setenv("DECIDIR_PRIVATE_KEY", "")
	t.Setenv("SECRETS_BACKEND", SecretsBackendVault)

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, SecretsBackendVault, cfg.Secrets.Backend)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DECIDIR_MERCHANT=merchant-from-file\n"), 0600))
	t.Setenv("DECIDIR_MERCHANT", "")
	require.NoError(t, os.Unsetenv("DECIDIR_MERCHANT"))

	require.NoError(t, LoadEnvFile(path, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "merchant-from-file", os.Getenv("DECIDIR_MERCHANT"))
}
