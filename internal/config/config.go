// Package config provides configuration loading and validation for the resume builder.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or Defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	Store       string `json:"store,omitempty"`        // memory, redis or postgres
	RedisURL    string `json:"redis_url,omitempty"`    // redis://host:6379/0
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// AI
	LLMProvider     string `json:"llm_provider,omitempty"`      // gemini or anthropic
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`    // Gemini API key
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"` // Anthropic API key
	Model           string `json:"model,omitempty"`             // Overrides the provider's default model

	// Export
	Template           string `json:"template,omitempty"`             // Default template id
	ChromePath         string `json:"chrome_path,omitempty"`          // Chrome binary for PDF export
	ShareBackend       string `json:"share_backend,omitempty"`        // file or minio
	OutputDir          string `json:"output_dir,omitempty"`           // Where the file sharer writes PDFs
	MinioEndpoint      string `json:"minio_endpoint,omitempty"`       // host:port
	MinioAccessKey     string `json:"minio_access_key,omitempty"`     // Access key id
	MinioSecretKey     string `json:"minio_secret_key,omitempty"`     // Secret access key
	MinioBucket        string `json:"minio_bucket,omitempty"`         // Bucket for shared PDFs
	MinioRegion        string `json:"minio_region,omitempty"`         // Bucket region
	MinioUseSSL        bool   `json:"minio_use_ssl,omitempty"`        // Use https for MinIO
	ShareExpiryMinutes int    `json:"share_expiry_minutes,omitempty"` // Presigned link lifetime

	// Timing
	AutosaveDelayMS  int `json:"autosave_delay_ms,omitempty"`  // Debounce before background saves
	StorageTimeoutMS int `json:"storage_timeout_ms,omitempty"` // Budget for store reads and writes
	AITimeoutMS      int `json:"ai_timeout_ms,omitempty"`      // Budget for summary generation

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // text or json
	Verbose   bool   `json:"verbose,omitempty"`    // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:               8080,
		Store:              "memory",
		LLMProvider:        "gemini",
		Template:           "ats",
		ShareBackend:       "file",
		OutputDir:          "output",
		MinioBucket:        "resumes",
		ShareExpiryMinutes: 60,
		AutosaveDelayMS:    600,
		StorageTimeoutMS:   4000,
		AITimeoutMS:        20000,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills empty fields from environment variables.
// Values already set (from a config file) win over the environment.
func (c *Config) ApplyEnv() {
	setString(&c.Store, "STORE_BACKEND")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.LLMProvider, "LLM_PROVIDER")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.Model, "LLM_MODEL")
	setString(&c.ChromePath, "CHROME_PATH")
	setString(&c.ShareBackend, "SHARE_BACKEND")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.MinioEndpoint, "MINIO_ENDPOINT")
	setString(&c.MinioAccessKey, "MINIO_ACCESS_KEY")
	setString(&c.MinioSecretKey, "MINIO_SECRET_KEY")
	setString(&c.MinioBucket, "MINIO_BUCKET")
	setString(&c.MinioRegion, "MINIO_REGION")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	setInt(&c.Port, "PORT")
	setInt(&c.AutosaveDelayMS, "AUTOSAVE_DELAY_MS")

	if !c.MinioUseSSL {
		c.MinioUseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	}
}

func setString(field *string, key string) {
	if *field == "" {
		*field = os.Getenv(key)
	}
}

func setInt(field *int, key string) {
	if *field != 0 {
		return
	}
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*field = n
	}
}

// Validate checks that the configuration has valid values.
// Empty fields are allowed; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	switch c.Store {
	case "", "memory", "redis", "postgres":
	default:
		return fmt.Errorf("config error: 'store' must be memory, redis or postgres, got %q", c.Store)
	}

	switch c.LLMProvider {
	case "", "gemini", "anthropic":
	default:
		return fmt.Errorf("config error: 'llm_provider' must be gemini or anthropic, got %q", c.LLMProvider)
	}

	switch c.ShareBackend {
	case "", "file", "minio":
	default:
		return fmt.Errorf("config error: 'share_backend' must be file or minio, got %q", c.ShareBackend)
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}

	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.AutosaveDelayMS < 0 || c.StorageTimeoutMS < 0 || c.AITimeoutMS < 0 {
		return fmt.Errorf("config error: delays and timeouts must be non-negative")
	}
	if c.ShareExpiryMinutes < 0 {
		return fmt.Errorf("config error: 'share_expiry_minutes' must be non-negative")
	}

	// Backend-specific requirements
	if c.Store == "redis" && c.RedisURL == "" {
		return fmt.Errorf("config error: 'redis_url' is required for the redis store")
	}
	if c.Store == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres store")
	}
	if c.ShareBackend == "minio" && c.MinioEndpoint == "" {
		return fmt.Errorf("config error: 'minio_endpoint' is required for the minio share backend")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	stringFields := []struct {
		field *string
		def   string
	}{
		{&result.Store, defaults.Store},
		{&result.RedisURL, defaults.RedisURL},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.LLMProvider, defaults.LLMProvider},
		{&result.GeminiAPIKey, defaults.GeminiAPIKey},
		{&result.AnthropicAPIKey, defaults.AnthropicAPIKey},
		{&result.Model, defaults.Model},
		{&result.Template, defaults.Template},
		{&result.ChromePath, defaults.ChromePath},
		{&result.ShareBackend, defaults.ShareBackend},
		{&result.OutputDir, defaults.OutputDir},
		{&result.MinioEndpoint, defaults.MinioEndpoint},
		{&result.MinioAccessKey, defaults.MinioAccessKey},
		{&result.MinioSecretKey, defaults.MinioSecretKey},
		{&result.MinioBucket, defaults.MinioBucket},
		{&result.MinioRegion, defaults.MinioRegion},
		{&result.LogLevel, defaults.LogLevel},
		{&result.LogFormat, defaults.LogFormat},
	}
	for _, s := range stringFields {
		if *s.field == "" {
			*s.field = s.def
		}
	}

	// Int fields: use default if zero
	ints := []struct {
		field *int
		def   int
	}{
		{&result.Port, defaults.Port},
		{&result.ShareExpiryMinutes, defaults.ShareExpiryMinutes},
		{&result.AutosaveDelayMS, defaults.AutosaveDelayMS},
		{&result.StorageTimeoutMS, defaults.StorageTimeoutMS},
		{&result.AITimeoutMS, defaults.AITimeoutMS},
	}
	for _, n := range ints {
		if *n.field == 0 {
			*n.field = n.def
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// AutosaveDelay returns the debounce delay as a duration
func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// StorageTimeout returns the store operation budget as a duration
func (c *Config) StorageTimeout() time.Duration {
	return time.Duration(c.StorageTimeoutMS) * time.Millisecond
}

// AITimeout returns the summary generation budget as a duration
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutMS) * time.Millisecond
}

// ShareExpiry returns the presigned link lifetime as a duration
func (c *Config) ShareExpiry() time.Duration {
	return time.Duration(c.ShareExpiryMinutes) * time.Minute
}

// Load builds the effective configuration: the optional JSON file at path,
// then the environment, then Defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
