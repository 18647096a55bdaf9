package intelligence

import (
	"strings"
	"testing"

	"github.com/bnde/leuk/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_SectionOrder(t *testing.T) {
	kb := knowledge.Default()
	question := "Quel est le taux d'épargne ?"

	prompt := BuildPrompt(question, kb)

	refusal := strings.Index(prompt, `"`+kb.Refusal+`"`)
	bullets := strings.Index(prompt, "tirets sur des lignes séparées")
	corpus := strings.Index(prompt, "PRÉSENTATION DE LA BNDE")
	q := strings.Index(prompt, "Question: "+question)

	require.GreaterOrEqual(t, refusal, 0, "refusal instruction missing")
	require.GreaterOrEqual(t, bullets, 0, "bullet instruction missing")
	require.GreaterOrEqual(t, corpus, 0, "knowledge text missing")
	require.GreaterOrEqual(t, q, 0, "question missing")

	assert.True(t, strings.HasPrefix(prompt, "Tu es l'assistant BNDE."))
	assert.Less(t, refusal, bullets)
	assert.Less(t, bullets, corpus)
	assert.Less(t, corpus, q)
	assert.True(t, strings.HasSuffix(prompt, "Réponds de façon claire et structurée."))
}

func TestBuildPrompt_QuestionIsLiteral(t *testing.T) {
	kb := knowledge.KnowledgeBase{Text: "CORPUS", Refusal: "NON"}

	prompt := BuildPrompt("%KNOWLEDGE% et %REFUSAL% ?", kb)

	assert.Contains(t, prompt, "Question: %KNOWLEDGE% et %REFUSAL% ?")
	assert.Equal(t, 1, strings.Count(prompt, "CORPUS"))
}

func TestBuildPrompt_KnowledgeWithPlaceholderUntouched(t *testing.T) {
	kb := knowledge.KnowledgeBase{Text: "taux %QUESTION%", Refusal: "NON"}

	prompt := BuildPrompt("frais ?", kb)

	assert.Contains(t, prompt, "taux %QUESTION%")
	assert.Contains(t, prompt, "Question: frais ?")
}
