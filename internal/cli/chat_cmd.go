package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnde/leuk/internal/cli/formatter"
	"github.com/bnde/leuk/internal/domain"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/bnde/leuk/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const replPrompt = "Vous> "

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ouvre une conversation avec l'assistant",
		Long: `Ouvre une conversation. L'historique est conservé pendant la session
et effacé à sa fermeture.

Commandes : /faq, /1 /2 /3, /history, /clear, /quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chat, closeStore, err := app.openChat()
			if err != nil {
				return err
			}
			defer closeStore()

			session, err := chat.Start(ctx)
			if err != nil {
				return err
			}

			if app.interactive() {
				p := tea.NewProgram(newChatView(ctx, chat, session), tea.WithContext(ctx))
				_, err := p.Run()
				if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
					return nil
				}
				return err
			}
			return runChatREPL(ctx, chat, session, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runChatREPL is the line-oriented chat used when no terminal is attached.
func runChatREPL(ctx context.Context, chat service.ChatService, session *domain.ChatSession, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, formatter.FormatWelcome())

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, replPrompt)

		line, err := readPromptLine(in)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil
		if eof && line == "" {
			fmt.Fprintln(out)
			return nil
		}

		input := parseChatInput(line, knowledge.FrequentQuestions())
		switch input.action {
		case actionQuit:
			return nil
		case actionClear:
			if err := chat.Reset(ctx, session); err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatCleared())
		case actionFAQ:
			fmt.Fprint(out, formatter.FormatFrequentQuestions(knowledge.FrequentQuestions()))
		case actionHistory:
			messages, err := chat.History(ctx, session)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatHistory(messages))
		case actionUnknown:
			fmt.Fprintln(out, formatter.Dim("  Commande inconnue : "+input.command))
		case actionAsk:
			if input.command != "" {
				fmt.Fprint(out, formatter.FormatUserMessage(input.question))
			}
			turn, err := chat.Submit(ctx, session, input.question)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatAnswer(turn.Result))
		}

		if eof {
			return nil
		}
	}
}
