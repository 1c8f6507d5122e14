package llm

import (
	"context"

	"github.com/fieldrx/hcplog/internal/model"
)

// Message roles used in completion prompts
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry in a completion prompt
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// Messages is the ordered prompt (system instruction + user text)
	Messages []Message

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling (0 = deterministic)
	Temperature float32
}

// Provider defines the interface for LLM completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one chat completion request and returns the
	// assistant's raw text content
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g. Groq's OpenAI-compatible API)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling
	Temperature float32

	// RequestsPerSecond throttles outbound calls (0 = unlimited)
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "llama-3.3-70b-versatile",
		Timeout:     30,
		MaxTokens:   400,
		Temperature: 0,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config, filling
// unset values from the defaults
func ConfigFromModel(mc model.LLMConfig) Config {
	cfg := Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		Temperature:       mc.Temperature,
		RequestsPerSecond: mc.RequestsPerSecond,
	}
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return cfg
}
