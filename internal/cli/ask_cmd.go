package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnde/leuk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Pose une question à l'assistant",
		Long: `Pose une question unique et affiche la réponse.

Les questions hors du domaine BNDE reçoivent le message de refus sans
appel au modèle. Un échec du modèle affiche un message d'erreur fixe.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question must not be empty")
			}

			stop := func() {}
			if app.interactive() && !jsonOut {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), formatter.ThinkingMessage)
			}
			result := app.ask.Ask(cmd.Context(), question)
			stop()

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				return enc.Encode(result)
			}
			fmt.Fprint(out, formatter.FormatAnswer(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	return cmd
}
