package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"store": "redis",
		"redis_url": "redis://localhost:6379/0",
		"llm_provider": "anthropic",
		"share_backend": "minio",
		"minio_endpoint": "localhost:9000",
		"autosave_delay_ms": 250,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, "minio", cfg.ShareBackend)
	assert.Equal(t, 250, cfg.AutosaveDelayMS)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "unknown store", cfg: Config{Store: "sqlite"}, wantErr: "'store'"},
		{name: "redis without url", cfg: Config{Store: "redis"}, wantErr: "'redis_url'"},
		{name: "postgres without url", cfg: Config{Store: "postgres"}, wantErr: "'database_url'"},
		{name: "unknown provider", cfg: Config{LLMProvider: "openai"}, wantErr: "'llm_provider'"},
		{name: "unknown share backend", cfg: Config{ShareBackend: "s3"}, wantErr: "'share_backend'"},
		{name: "minio without endpoint", cfg: Config{ShareBackend: "minio"}, wantErr: "'minio_endpoint'"},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, wantErr: "'log_format'"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "negative delay", cfg: Config{AutosaveDelayMS: -1}, wantErr: "non-negative"},
		{name: "negative expiry", cfg: Config{ShareExpiryMinutes: -5}, wantErr: "'share_expiry_minutes'"},
		{name: "missing chrome", cfg: Config{ChromePath: "/nonexistent/chrome"}, wantErr: "chrome binary not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		Store:           "postgres",
		DatabaseURL:     "postgres://localhost/cv",
		AutosaveDelayMS: 100,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	// Set values preserved
	assert.Equal(t, "postgres", merged.Store)
	assert.Equal(t, "postgres://localhost/cv", merged.DatabaseURL)
	assert.Equal(t, 100, merged.AutosaveDelayMS)

	// Empty values filled
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "gemini", merged.LLMProvider)
	assert.Equal(t, "ats", merged.Template)
	assert.Equal(t, "file", merged.ShareBackend)
	assert.Equal(t, 4000, merged.StorageTimeoutMS)
	assert.Equal(t, 20000, merged.AITimeoutMS)

	// Receiver unchanged
	assert.Equal(t, 0, cfg.Port)
}

func TestDurations(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 600*time.Millisecond, cfg.AutosaveDelay())
	assert.Equal(t, 4*time.Second, cfg.StorageTimeout())
	assert.Equal(t, 20*time.Second, cfg.AITimeout())
	assert.Equal(t, time.Hour, cfg.ShareExpiry())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "3000")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Config{GeminiAPIKey: "file-key"}
	cfg.ApplyEnv()

	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, "file-key", cfg.GeminiAPIKey, "file values win over the environment")
	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.MinioUseSSL)
}

func TestLoad(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_FORMAT", "")

	path := writeConfig(t, `{"log_format": "json"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 8080, cfg.Port)

	_, err = Load(writeConfig(t, `{"store": "sqlite"}`))
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}
