package intelligence

import (
	"strings"

	"github.com/bnde/leuk/internal/knowledge"
)

const askPromptTemplate = `Tu es l'assistant BNDE. Réponds UNIQUEMENT avec les informations ci-dessous.
Si l'info n'est pas dans cette base, dis: "%REFUSAL%"

IMPORTANT : Pour les listes de documents, présente-les avec des tirets sur des lignes séparées pour une meilleure lisibilité.

%KNOWLEDGE%

Question: %QUESTION%
Réponds de façon claire et structurée.`

// BuildPrompt composes the single instruction message sent to the model:
// role preamble, verbatim refusal instruction, bullet formatting instruction,
// the knowledge text and the literal question, in that order.
//
// Substitution is single-pass, so placeholders appearing inside the
// question or the knowledge text are left untouched.
func BuildPrompt(question string, kb knowledge.KnowledgeBase) string {
	r := strings.NewReplacer(
		"%REFUSAL%", kb.Refusal,
		"%KNOWLEDGE%", kb.Text,
		"%QUESTION%", question,
	)
	return r.Replace(askPromptTemplate)
}
