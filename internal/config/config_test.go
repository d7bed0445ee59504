package config

import (
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("http:\n  port: 9000\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "file" || cfg.Database.DataDir != "data" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Pexels.BaseURL != "https://api.pexels.com/v1" || cfg.Pexels.TimeoutSec != 15 {
		t.Errorf("unexpected pexels defaults: %+v", cfg.Pexels)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.MaxTokens != 150 || cfg.LLM.TimeoutSec != 20 {
		t.Errorf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if cfg.Datamuse.TimeoutSec != 10 {
		t.Errorf("expected datamuse timeout 10, got %d", cfg.Datamuse.TimeoutSec)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS default, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("ARTTINDER_TEST_PEXELS_KEY", "px-123")

	cfg, err := Parse([]byte(`
pexels:
  api_key: ${ARTTINDER_TEST_PEXELS_KEY}
llm:
  api_key: ${ARTTINDER_TEST_MISSING:-fallback-key}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pexels.APIKey != "px-123" {
		t.Errorf("expected expanded pexels key, got %q", cfg.Pexels.APIKey)
	}
	if cfg.LLM.APIKey != "fallback-key" {
		t.Errorf("expected default llm key, got %q", cfg.LLM.APIKey)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 70000}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Driver: "mysql"}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), `got "mysql"`) {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	for _, driver := range []string{"redis", "valkey"} {
		t.Run(driver, func(t *testing.T) {
			cfg := Config{Database: DatabaseConfig{Driver: driver}}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error for missing addrs")
			}

			cfg.Database.Addrs = []string{"localhost:6379"}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_EmbeddingRequiresKey(t *testing.T) {
	cfg := Config{Embedding: EmbeddingConfig{Enabled: true}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled embedding without api key")
	}
}

func TestValidate_EmbeddingCacheRequiresRedis(t *testing.T) {
	cfg := Config{Embedding: EmbeddingConfig{Enabled: true, APIKey: "k", Cache: true}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for cache with file driver")
	}
}

func TestValidate_FailureRatio(t *testing.T) {
	cfg := Config{Pexels: PexelsConfig{Breaker: BreakerConfig{FailureRatio: 1.5}}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for failure ratio above 1")
	}
}

func TestExpandEnvVars_EmptyWithoutDefault(t *testing.T) {
	got := string(expandEnvVars([]byte("key: ${ARTTINDER_TEST_UNSET}")))
	if got != "key: " {
		t.Errorf("unexpected expansion: %q", got)
	}
}
