package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:tripscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding" jsonschema:"description=Embedding service configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for follow-up questions (optional)"`

	Preferences PreferencesConfig `yaml:"preferences" json:"preferences" jsonschema:"description=Preference matching configuration"`

	Sessions SessionsConfig `yaml:"sessions" json:"sessions" jsonschema:"description=Conversation session configuration"`
}

// EmbeddingConfig holds the OpenAI-compatible embedding service settings
type EmbeddingConfig struct {
	Endpoint   string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey     string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model      string        `yaml:"model" json:"model" jsonschema:"default=text-embedding-3-small,description=Embedding model name"`
	Dimensions int           `yaml:"dimensions" json:"dimensions" jsonschema:"minimum=0,description=Output vector size if the model supports it (0 for model default)"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	BatchSize  int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=32,minimum=1,description=Maximum texts per embedding request"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts for transient failures"`
}

// LLMConfig holds chat completion settings used to phrase follow-up questions
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint, questions come from field descriptions if empty"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=100,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// Enabled checks if follow-up questions should be generated by the LLM
func (c LLMConfig) Enabled() bool {
	return c.Endpoint != ""
}

// PreferencesConfig holds preference matching settings
type PreferencesConfig struct {
	Threshold    float64 `yaml:"threshold" json:"threshold" jsonschema:"default=0.6,exclusiveMinimum=0,maximum=1,description=Minimum similarity to accept a match"`
	Concurrency  int     `yaml:"concurrency" json:"concurrency" jsonschema:"default=4,minimum=1,description=Parallel example embeddings per field"`
	SchemaFile   string  `yaml:"schema_file" json:"schema_file" jsonschema:"description=YAML file with custom preference fields (built-in travel schema if empty)"`
	CacheAnchors bool    `yaml:"cache_anchors" json:"cache_anchors" jsonschema:"default=true,description=Memoize example phrase embeddings"`
}

// SessionsConfig holds conversation session settings
type SessionsConfig struct {
	TTL             time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=24h,description=Idle time before a session is removed"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=1h,description=Interval between expired session cleanups"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// cache_anchors defaults to true, so it can't rely on the zero value
	cfg := Config{Preferences: PreferencesConfig{CacheAnchors: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values
func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:tripscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// embedding
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 30 * time.Second
	}
	if cfg.Embedding.BatchSize == 0 {
		cfg.Embedding.BatchSize = 32
	}
	if cfg.Embedding.Retries == 0 {
		cfg.Embedding.Retries = 3
	}

	// llm
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 100
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	// preferences
	if cfg.Preferences.Threshold == 0 {
		cfg.Preferences.Threshold = 0.6
	}
	if cfg.Preferences.Concurrency == 0 {
		cfg.Preferences.Concurrency = 4
	}

	// sessions
	if cfg.Sessions.TTL == 0 {
		cfg.Sessions.TTL = 24 * time.Hour
	}
	if cfg.Sessions.CleanupInterval == 0 {
		cfg.Sessions.CleanupInterval = time.Hour
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate embedding config
	if cfg.Embedding.Endpoint == "" {
		return fmt.Errorf("embedding.endpoint is required")
	}
	if cfg.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must be non-negative")
	}
	if cfg.Embedding.BatchSize < 1 {
		return fmt.Errorf("embedding.batch_size must be at least 1")
	}
	if cfg.Embedding.Retries < 1 {
		return fmt.Errorf("embedding.retries must be at least 1")
	}

	// validate LLM config, only when enabled
	if cfg.LLM.Enabled() {
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm.endpoint is set")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}

	// validate preferences config
	if cfg.Preferences.Threshold <= 0 || cfg.Preferences.Threshold > 1 {
		return fmt.Errorf("preferences.threshold must be in (0, 1]")
	}
	if cfg.Preferences.Concurrency < 1 {
		return fmt.Errorf("preferences.concurrency must be at least 1")
	}

	// validate sessions config
	if cfg.Sessions.TTL < time.Minute {
		return fmt.Errorf("sessions.ttl must be at least 1 minute")
	}
	if cfg.Sessions.CleanupInterval < time.Second {
		return fmt.Errorf("sessions.cleanup_interval must be at least 1 second")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetEmbeddingConfig returns embedding service configuration
func (c *Config) GetEmbeddingConfig() EmbeddingConfig {
	return c.Embedding
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
