package cli

import (
	"fmt"
	"strconv"

	"github.com/bnde/leuk/internal/cli/formatter"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newFAQCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "faq [numéro]",
		Short: "Liste ou pose une question fréquente",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions := knowledge.FrequentQuestions()
			out := cmd.OutOrStdout()

			var question string
			switch {
			case len(args) == 1:
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 || n > len(questions) {
					return fmt.Errorf("question number must be between 1 and %d, got %q", len(questions), args[0])
				}
				question = questions[n-1]
			case app.interactive():
				form := faqSelectForm(questions, &question)
				if err := form.RunWithContext(cmd.Context()); err != nil {
					return err
				}
			default:
				fmt.Fprint(out, formatter.FormatFrequentQuestions(questions))
				return nil
			}

			fmt.Fprint(out, formatter.FormatUserMessage(question))
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), formatter.ThinkingMessage)
			}
			result := app.ask.Ask(cmd.Context(), question)
			stop()
			fmt.Fprint(out, formatter.FormatAnswer(result))
			return nil
		},
	}
}

func faqSelectForm(questions []string, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(questions))
	for i, q := range questions {
		options = append(options, huh.NewOption(fmt.Sprintf("%d. %s", i+1, q), q))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Questions fréquentes").
				Options(options...).
				Value(result),
		),
	).WithTheme(leukHuhTheme()).WithShowHelp(false)
}
