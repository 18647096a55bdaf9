package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnde/leuk/internal/llm"
	"github.com/spf13/pflag"
)

// llmFlags override the LLM settings loaded from the environment. Only
// flags set on the command line take effect.
type llmFlags struct {
	endpoint string
	model    string
	timeout  time.Duration
}

func (f *llmFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.endpoint, "endpoint", "", "completion server base URL (overrides LEUK_LLM_ENDPOINT)")
	fs.StringVar(&f.model, "model", "", "model name (overrides LEUK_LLM_MODEL)")
	fs.DurationVar(&f.timeout, "timeout", 0, "bounded wait per completion call (overrides LEUK_LLM_TIMEOUT_MS)")
}

func (f *llmFlags) apply(fs *pflag.FlagSet, cfg *llm.LLMConfig) error {
	if fs.Changed("endpoint") {
		cfg.Endpoint = strings.TrimRight(strings.TrimSpace(f.endpoint), "/")
	}
	if fs.Changed("model") {
		model := strings.TrimSpace(f.model)
		if model == "" {
			return fmt.Errorf("--model must not be empty")
		}
		cfg.Model = model
	}
	if fs.Changed("timeout") {
		if f.timeout < time.Millisecond {
			return fmt.Errorf("--timeout must be at least 1ms, got %s", f.timeout)
		}
		cfg.TimeoutMs = int(f.timeout / time.Millisecond)
	}
	return nil
}
