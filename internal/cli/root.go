package cli

import (
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "leuk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var flags llmFlags

	root := &cobra.Command{
		Use:           "leuk",
		Short:         knowledge.AssistantName + ", l'assistant virtuel de la BNDE",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd.Flags(), &app.Config.LLM); err != nil {
				return err
			}
			app.wire()
			return nil
		},
	}
	flags.register(root.PersistentFlags())

	root.AddCommand(
		newAskCmd(app),
		newChatCmd(app),
		newFAQCmd(app),
		newServeCmd(app),
		newAboutCmd(app),
	)

	return root
}
