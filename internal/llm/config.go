package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CompletionsPath is appended to the endpoint base URL for chat completions.
const CompletionsPath = "/api/v1/chat/completions"

// modelsPath is requested by Available.
const modelsPath = "/api/models"

// LLMConfig holds all configuration for the remote completion client.
type LLMConfig struct {
	LogCalls    bool
	Endpoint    string
	APIKey      string
	Model       string
	TimeoutMs   int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns an LLMConfig with the production defaults.
// The endpoint and API key have no default and must come from the environment.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:    false,
		Endpoint:    "",
		APIKey:      "",
		Model:       "mistral:7b",
		TimeoutMs:   30000,
		Temperature: 0.1,
		MaxTokens:   800,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("LEUK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LEUK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("LEUK_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LEUK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LEUK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LEUK_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("LEUK_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}

	return cfg
}

// Timeout returns the bounded wait applied to each completion call.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Configured reports whether an endpoint is set.
func (c LLMConfig) Configured() bool {
	return c.Endpoint != ""
}
