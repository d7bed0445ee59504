package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the arttinder API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Database  DatabaseConfig  `yaml:"database"`
	Pexels    PexelsConfig    `yaml:"pexels"`
	LLM       LLMConfig       `yaml:"llm"`
	Datamuse  DatamuseConfig  `yaml:"datamuse"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CORSConfig holds cross-origin settings for the browser client.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSec        int      `yaml:"max_age_sec"`
}

// RateLimitConfig limits requests per client IP. Requests == 0 disables limiting.
type RateLimitConfig struct {
	Requests  int `yaml:"requests"`
	WindowSec int `yaml:"window_sec"`
}

// DatabaseConfig holds user and preference storage settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // file, redis, valkey (default: file)
	DataDir          string   `yaml:"data_dir"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PexelsConfig holds photo provider settings.
type PexelsConfig struct {
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url"`
	TimeoutSec int           `yaml:"timeout_sec"`
	Breaker    BreakerConfig `yaml:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the photo provider.
type BreakerConfig struct {
	MinRequests  uint32  `yaml:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio"`
	IntervalSec  int     `yaml:"interval_sec"`
	OpenSec      int     `yaml:"open_sec"`
}

// LLMConfig holds the completion endpoint settings. An empty APIKey disables the generator.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

// DatamuseConfig holds word-association endpoint settings.
type DatamuseConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// EmbeddingConfig holds the optional semantic ranking model.
type EmbeddingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	Cache       bool   `yaml:"cache"` // requires a redis/valkey database driver
	CacheTTLSec int    `yaml:"cache_ttl_sec"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

var drivers = []string{"file", "redis", "valkey"}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded into the process environment first.
func Load(env string) (Config, error) {
	_ = godotenv.Load() // optional; real environment variables take precedence

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// recommend fans out up to 20 sequential searches
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.RateLimit.WindowSec <= 0 {
		c.RateLimit.WindowSec = 60
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "file"
	}
	if c.Database.DataDir == "" {
		c.Database.DataDir = "data"
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "arttinder:"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Pexels.BaseURL == "" {
		c.Pexels.BaseURL = "https://api.pexels.com/v1"
	}
	if c.Pexels.TimeoutSec <= 0 {
		c.Pexels.TimeoutSec = 15
	}
	if c.Pexels.Breaker.MinRequests == 0 {
		c.Pexels.Breaker.MinRequests = 10
	}
	if c.Pexels.Breaker.FailureRatio <= 0 {
		c.Pexels.Breaker.FailureRatio = 0.6
	}
	if c.Pexels.Breaker.IntervalSec <= 0 {
		c.Pexels.Breaker.IntervalSec = 60
	}
	if c.Pexels.Breaker.OpenSec <= 0 {
		c.Pexels.Breaker.OpenSec = 30
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.5
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 150
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = 20
	}
	if c.Datamuse.BaseURL == "" {
		c.Datamuse.BaseURL = "https://api.datamuse.com"
	}
	if c.Datamuse.TimeoutSec <= 0 {
		c.Datamuse.TimeoutSec = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.CacheTTLSec <= 0 {
		c.Embedding.CacheTTLSec = 7 * 24 * 3600
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !slices.Contains(drivers, c.Database.Driver) {
		return fmt.Errorf("database.driver must be one of %s, got %q", strings.Join(drivers, ", "), c.Database.Driver)
	}
	if c.Database.Driver != "file" && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
	}
	if c.Pexels.Breaker.FailureRatio > 1 {
		return fmt.Errorf("pexels.breaker.failure_ratio must be in (0, 1], got %g", c.Pexels.Breaker.FailureRatio)
	}
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("rate_limit.requests must not be negative, got %d", c.RateLimit.Requests)
	}
	if c.Embedding.Enabled && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required when embedding.enabled is true")
	}
	if c.Embedding.Enabled && c.Embedding.Cache && c.Database.Driver == "file" {
		return fmt.Errorf("embedding.cache requires a redis or valkey database driver")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
