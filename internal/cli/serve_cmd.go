package cli

import (
	"os/signal"
	"syscall"

	"github.com/bnde/leuk/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose l'assistant en HTTP (POST /api/ask)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.Config.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.Logger.Info("serving",
				zap.String("addr", addr),
				zap.String("model", app.Config.LLM.Model),
				zap.Bool("llm_configured", app.Config.LLM.Configured()),
			)
			return api.NewServer(app.ask, app.Metrics.Handler(), app.Logger, addr, app.Config.LLM.Timeout()).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LEUK_ADDR)")
	return cmd
}
