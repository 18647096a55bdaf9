// Package config assembles process configuration from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bnde/leuk/internal/llm"
	"github.com/bnde/leuk/internal/logger"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read at startup when present.
const DefaultEnvFile = ".env"

// DefaultAddr is the listen address of the HTTP API.
const DefaultAddr = ":8080"

// Config is the complete process configuration.
type Config struct {
	LLM       llm.LLMConfig
	LogLevel  string
	LogFormat string
	Addr      string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LLM:       llm.DefaultConfig(),
		LogLevel:  "info",
		LogFormat: logger.FormatConsole,
		Addr:      DefaultAddr,
	}
}

// Load reads the given env files, then the environment. Missing files are
// skipped. Variables already present in the environment win over file
// values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := Default()
	cfg.LLM = llm.LoadConfig()
	if v := os.Getenv("LEUK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LEUK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("LEUK_ADDR"); v != "" {
		cfg.Addr = v
	}
	return cfg, nil
}
