package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnde/leuk/internal/cli/formatter"
	"github.com/bnde/leuk/internal/domain"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/bnde/leuk/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const inputCharLimit = 500

type answerMsg struct {
	turn *service.Turn
	err  error
}

type historyMsg struct {
	messages []*domain.ChatMessage
	err      error
}

type clearedMsg struct {
	err error
}

// chatView is the full-screen chat. Only one question is in flight at a
// time; keys other than ctrl+c are ignored while it is pending.
type chatView struct {
	ctx     context.Context
	chat    service.ChatService
	session *domain.ChatSession

	input   textinput.Model
	spinner spinner.Model

	transcript []string
	pending    bool
	quitting   bool
	width      int
}

func newChatView(ctx context.Context, chat service.ChatService, session *domain.ChatSession) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = formatter.StyleUserLabel.Render(formatter.UserLabel) + " "
	ti.Placeholder = formatter.InputHint
	ti.CharLimit = inputCharLimit

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader

	return &chatView{
		ctx:     ctx,
		chat:    chat,
		session: session,
		input:   ti,
		spinner: sp,
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.input.Width = msg.Width - formatter.Width(v.input.Prompt) - 1
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case spinner.TickMsg:
		if !v.pending {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case answerMsg:
		v.pending = false
		if msg.err != nil {
			v.appendError(msg.err)
			return v, nil
		}
		v.transcript = append(v.transcript, formatter.FormatAnswer(msg.turn.Result))
		return v, nil

	case historyMsg:
		if msg.err != nil {
			v.appendError(msg.err)
			return v, nil
		}
		v.transcript = append(v.transcript, formatter.FormatHistory(msg.messages))
		return v, nil

	case clearedMsg:
		if msg.err != nil {
			v.appendError(msg.err)
			return v, nil
		}
		v.transcript = []string{formatter.FormatCleared()}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		v.quitting = true
		return v, tea.Quit
	}
	if v.pending {
		return v, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		v.quitting = true
		return v, tea.Quit
	case tea.KeyEnter:
		line := v.input.Value()
		v.input.Reset()
		return v, v.submit(line)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) submit(line string) tea.Cmd {
	input := parseChatInput(line, knowledge.FrequentQuestions())
	switch input.action {
	case actionQuit:
		v.quitting = true
		return tea.Quit
	case actionFAQ:
		v.transcript = append(v.transcript, formatter.FormatFrequentQuestions(knowledge.FrequentQuestions()))
	case actionHistory:
		ctx, chat, session := v.ctx, v.chat, v.session
		return func() tea.Msg {
			messages, err := chat.History(ctx, session)
			return historyMsg{messages: messages, err: err}
		}
	case actionClear:
		ctx, chat, session := v.ctx, v.chat, v.session
		return func() tea.Msg {
			return clearedMsg{err: chat.Reset(ctx, session)}
		}
	case actionUnknown:
		v.transcript = append(v.transcript, formatter.Dim("  Commande inconnue : "+input.command)+"\n")
	case actionAsk:
		v.transcript = append(v.transcript, formatter.FormatUserMessage(input.question))
		v.pending = true
		ctx, chat, session, question := v.ctx, v.chat, v.session, input.question
		return tea.Batch(v.spinner.Tick, func() tea.Msg {
			turn, err := chat.Submit(ctx, session, question)
			return answerMsg{turn: turn, err: err}
		})
	}
	return nil
}

func (v *chatView) appendError(err error) {
	v.transcript = append(v.transcript, formatter.StyleRed.Render(fmt.Sprintf("  Erreur : %v", err))+"\n")
}

func (v *chatView) View() string {
	if v.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.FormatWelcome())
	for _, entry := range v.transcript {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	if v.pending {
		b.WriteString(v.spinner.View() + " " + formatter.Dim(formatter.ThinkingMessage))
	} else {
		b.WriteString(v.input.View())
	}
	b.WriteString("\n\n")
	b.WriteString(formatter.Dim("  entrée envoyer · esc quitter"))
	return b.String()
}
