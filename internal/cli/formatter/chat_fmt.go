package formatter

import (
	"fmt"
	"strings"

	"github.com/bnde/leuk/internal/domain"
	"github.com/bnde/leuk/internal/intelligence"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/charmbracelet/lipgloss"
)

const answerWrapWidth = 80

// Labels and prompts shown around the conversation.
const (
	UserLabel       = "Vous :"
	ThinkingMessage = knowledge.AssistantName + " réfléchit..."
	InputHint       = "Ex: Qui est la BNDE ? Quels documents pour ouvrir un compte ?"
)

// AssistantLabel prefixes every assistant message.
var AssistantLabel = knowledge.AssistantName + " :"

// FormatWelcome renders the banner printed when a chat starts.
func FormatWelcome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleGreen.Bold(true).Render("  "+knowledge.AssistantName) + StyleDim.Render(" · Assistant Virtuel BNDE"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Banque Nationale pour le Développement Économique") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────────────────────────") + "\n\n")
	b.WriteString(StyleDim.Render("  "+InputHint) + "\n")
	b.WriteString(StyleDim.Render("  /faq questions fréquentes · /1 /2 /3 les poser · /history · /clear · /quit") + "\n\n")
	return b.String()
}

// FormatUserMessage renders one line of user input with its label.
func FormatUserMessage(content string) string {
	return fmt.Sprintf("%s %s\n", StyleUserLabel.Render(UserLabel), content)
}

// FormatAssistantMessage renders assistant text. Refusals use the warning
// color and failure messages the error color.
func FormatAssistantMessage(content string, filtered, failed bool) string {
	body := indentWrapped(content, 2, answerWrapWidth)
	switch {
	case failed:
		body = StyleRed.Render(body)
	case filtered:
		body = StyleYellow.Render(body)
	}
	return StyleAssistantLabel.Render(AssistantLabel) + "\n" + body + "\n"
}

// FormatAnswer renders a pipeline result in a box whose border reflects
// the outcome.
func FormatAnswer(result intelligence.AskResult) string {
	border := ColorGreen
	switch {
	case !result.Success:
		border = ColorRed
	case result.Filtered:
		border = ColorYellow
	}
	content := FormatAssistantMessage(result.Response, result.Filtered, !result.Success)
	return renderBoxWithBorder("", strings.TrimRight(content, "\n"), border) + "\n"
}

// FormatHistory renders a session's messages in order.
func FormatHistory(messages []*domain.ChatMessage) string {
	if len(messages) == 0 {
		return Dim("  Aucun message.") + "\n"
	}
	var b strings.Builder
	for i, m := range messages {
		if i > 0 && m.IsUser() {
			b.WriteString("\n")
		}
		if m.IsUser() {
			b.WriteString(FormatUserMessage(m.Content))
			continue
		}
		b.WriteString(FormatAssistantMessage(m.Content, m.Filtered, m.Failed))
	}
	return b.String()
}

// FormatFrequentQuestions lists the canned questions with their shortcuts.
func FormatFrequentQuestions(questions []string) string {
	var b strings.Builder
	b.WriteString(Header("Questions fréquentes"))
	b.WriteString("\n")
	for i, q := range questions {
		b.WriteString(fmt.Sprintf("  %s %s\n", StylePurple.Render(fmt.Sprintf("/%d", i+1)), q))
	}
	return b.String()
}

// FormatAbout renders the about text with the completion endpoint status.
func FormatAbout(about, endpoint string, reachable bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(about))
	b.WriteString("\n\n")

	status := StyleRed.Render("● injoignable")
	switch {
	case endpoint == "":
		endpoint = "non configuré"
		status = StyleYellow.Render("● non configuré")
	case reachable:
		status = StyleGreen.Render("● joignable")
	}
	b.WriteString(fmt.Sprintf("%s %s  %s", Dim("Service :"), endpoint, status))

	return RenderBox("À propos", b.String()) + "\n"
}

// FormatCleared confirms a history reset.
func FormatCleared() string {
	return Dim("  Historique effacé.") + "\n"
}

// Width reports the display width of s.
func Width(s string) int {
	return lipgloss.Width(s)
}
