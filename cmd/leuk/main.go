package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bnde/leuk/internal/cli"
	"github.com/bnde/leuk/internal/config"
	"github.com/bnde/leuk/internal/logger"
	"github.com/bnde/leuk/internal/metrics"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	app := &cli.App{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics.New(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
