package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/bnde/leuk/internal/domain"
	"github.com/bnde/leuk/internal/intelligence"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatAnswer_Answered(t *testing.T) {
	out := stripANSI(FormatAnswer(intelligence.AskResult{
		Success:  true,
		Response: "Taux : 3,5% l'an\n• net d'impôts",
	}))

	assert.Contains(t, out, "Leuk :")
	assert.Contains(t, out, "Taux : 3,5% l'an")
	assert.Contains(t, out, "• net d'impôts")
	assert.Contains(t, out, "╭")
}

func TestFormatAnswer_FilteredShowsRefusal(t *testing.T) {
	out := stripANSI(FormatAnswer(intelligence.AskResult{
		Success:  true,
		Filtered: true,
		Response: knowledge.Refusal,
	}))

	assert.Contains(t, out, "Désolé je suis un assistant virtuel de la BNDE")
}

func TestFormatAnswer_Failed(t *testing.T) {
	out := stripANSI(FormatAnswer(intelligence.AskResult{Response: intelligence.MsgTechnicalError}))

	assert.Contains(t, out, intelligence.MsgTechnicalError)
}

func TestFormatHistory(t *testing.T) {
	out := stripANSI(FormatHistory([]*domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Qui est la BNDE ?"},
		{Role: domain.RoleAssistant, Content: "Une banque."},
		{Role: domain.RoleUser, Content: "Météo ?"},
		{Role: domain.RoleAssistant, Content: knowledge.Refusal, Filtered: true},
	}))

	first := strings.Index(out, "Vous : Qui est la BNDE ?")
	answer := strings.Index(out, "Une banque.")
	second := strings.Index(out, "Vous : Météo ?")
	assert.True(t, first >= 0 && first < answer && answer < second, out)
	assert.Equal(t, 2, strings.Count(out, "Leuk :"))
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatHistory(nil)), "Aucun message.")
}

func TestFormatFrequentQuestions(t *testing.T) {
	out := stripANSI(FormatFrequentQuestions(knowledge.FrequentQuestions()))

	assert.Contains(t, out, "QUESTIONS FRÉQUENTES")
	assert.Contains(t, out, "/1 Qui est la BNDE ?")
	assert.Contains(t, out, "/3 Quels documents pour un compte ?")
}

func TestFormatAbout(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		reachable bool
		want      string
	}{
		{"reachable", "http://llm.local", true, "● joignable"},
		{"unreachable", "http://llm.local", false, "● injoignable"},
		{"not configured", "", false, "● non configuré"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripANSI(FormatAbout(knowledge.About, tt.endpoint, tt.reachable))
			assert.Contains(t, out, "Les packages (NAFIO, TERRU)")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFormatWelcome(t *testing.T) {
	out := stripANSI(FormatWelcome())

	assert.Contains(t, out, "Leuk")
	assert.Contains(t, out, "/quit")
	assert.Contains(t, out, "/clear")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "one two\nthree four\nfive", wrapText("one two three four five", 10))
}

func TestWrapText_BulletContinuationIsIndented(t *testing.T) {
	got := wrapText("• Photocopie CNI ou passeport", 16)

	assert.Equal(t, "• Photocopie CNI\n  ou passeport", got)
}

func TestWrapText_CountsAccentsAsOneCell(t *testing.T) {
	assert.Equal(t, "épargne été", wrapText("épargne été", 11))
}
