package cli

import (
	"fmt"

	"github.com/bnde/leuk/internal/cli/formatter"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/spf13/cobra"
)

func newAboutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Décrit le périmètre de l'assistant et l'état du modèle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reachable := app.Config.LLM.Configured() && app.completer.Available(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAbout(knowledge.About, app.Config.LLM.Endpoint, reachable))
			return nil
		},
	}
}
