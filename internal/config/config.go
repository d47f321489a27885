package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	ListenAddr string

	// Knowledge base settings
	DBPath string

	// LLM settings
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Chat settings
	MaxHistory       int
	FallbackResponse string
	AnonymousUserID  string

	// Lookup cache settings
	CacheEnabled bool
	CacheSize    int
}

const defaultFallbackResponse = "I'm here to help with campus life. Try asking" +
	" about admissions, courses, placements, scholarships, or facilities for" +
	" more specific guidance."

// New returns a configuration populated with default values.
func New() *Config {
	return &Config{
		ListenAddr: ":8000",

		DBPath: "guidebot.db",

		LLMBaseURL: "http://localhost:11434/v1/",
		LLMModel:   "llama3.1:8b",
		LLMTimeout: 30 * time.Second,

		MaxHistory:       200,
		FallbackResponse: defaultFallbackResponse,
		AnonymousUserID:  "anonymous",

		CacheEnabled: true,
		CacheSize:    256,
	}
}

// Load builds the configuration from defaults plus environment overrides.
// A .env file in the working directory is honoured when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := New()

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		cfg.LLMTimeout = d
	}
	if v := os.Getenv("MAX_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_HISTORY %q: %w", v, err)
		}
		cfg.MaxHistory = n
	}
	if v := os.Getenv("FALLBACK_RESPONSE"); v != "" {
		cfg.FallbackResponse = v
	}
	if v := os.Getenv("ANONYMOUS_USER_ID"); v != "" {
		cfg.AnonymousUserID = v
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_ENABLED %q: %w", v, err)
		}
		cfg.CacheEnabled = b
	}
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_SIZE %q: %w", v, err)
		}
		cfg.CacheSize = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.LLMModel == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if c.MaxHistory < 1 {
		return fmt.Errorf("max history must be at least 1")
	}
	if c.FallbackResponse == "" {
		return fmt.Errorf("fallback response cannot be empty")
	}
	if c.CacheEnabled && c.CacheSize < 1 {
		return fmt.Errorf("cache size must be at least 1 when the cache is enabled")
	}
	return nil
}
