package model

import "time"

// Config is the full service configuration
type Config struct {
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// LLMConfig configures the completion provider used by the gateway
type LLMConfig struct {
	// Provider name: "openai" (any OpenAI-compatible endpoint, e.g. Groq),
	// "ollama", or "" to disable the LLM path entirely
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for hosted endpoints
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g. https://api.groq.com/openai/v1)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout per request, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature for sampling (0 = deterministic)
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`

	// RequestsPerSecond throttles outbound calls (0 = unlimited)
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// DebugLog is the append-only gateway trace file ("" = disabled)
	DebugLog string `yaml:"debug_log" mapstructure:"debug_log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// StoreConfig configures interaction persistence
type StoreConfig struct {
	// Path to the sqlite database file
	Path string `yaml:"path" mapstructure:"path"`

	// CacheTTL for the in-memory record cache
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// LogConfig configures the application logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    "", // Disabled by default; fallbacks only
			Model:       "llama-3.3-70b-versatile",
			Timeout:     30,
			MaxTokens:   400,
			Temperature: 0,
			DebugLog:    "hcplog_debug.log",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			Path:     "hcplog.db",
			CacheTTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
