package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bnde/leuk/internal/cli/formatter"
	"github.com/bnde/leuk/internal/config"
	"github.com/bnde/leuk/internal/intelligence"
	"github.com/bnde/leuk/internal/knowledge"
	"github.com/bnde/leuk/internal/llm"
	"github.com/bnde/leuk/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App whose completion client is the given fake. The
// config passed to the client is recorded in *gotCfg when non-nil.
func testApp(t *testing.T, completer *testutil.FakeCompleter, gotCfg *llm.LLMConfig) *App {
	t.Helper()
	return &App{
		Config: config.Default(),
		NewCompleter: func(cfg llm.LLMConfig, _ llm.Observer) llm.Completer {
			if gotCfg != nil {
				*gotCfg = cfg
			}
			return completer
		},
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- ask ---

func TestAskCmd_Answered(t *testing.T) {
	completer := &testutil.FakeCompleter{Response: "La BNDE a démarré en 2014."}
	app := testApp(t, completer, nil)

	out, err := executeCmd(t, app, "ask", "Qui", "est", "la", "BNDE", "?")
	require.NoError(t, err)

	assert.Contains(t, out, "La BNDE a démarré en 2014.")
	assert.Contains(t, out, formatter.AssistantLabel)
	require.Len(t, completer.Prompts(), 1)
	assert.Contains(t, completer.Prompts()[0], "Question: Qui est la BNDE ?")
}

func TestAskCmd_OutOfDomainShowsRefusal(t *testing.T) {
	completer := &testutil.FakeCompleter{Response: "Il fait beau."}
	app := testApp(t, completer, nil)

	out, err := executeCmd(t, app, "ask", "Quelle météo demain ?")
	require.NoError(t, err)

	assert.Contains(t, collapseSpace(out), "Désolé je suis un assistant virtuel de la BNDE")
	assert.Zero(t, completer.Calls())
}

func TestAskCmd_FailureStillExitsCleanly(t *testing.T) {
	completer := &testutil.FakeCompleter{Err: fmt.Errorf("%w: status 500", llm.ErrUpstream)}
	app := testApp(t, completer, nil)

	out, err := executeCmd(t, app, "ask", "Quels frais pour la carte ?")
	require.NoError(t, err)

	assert.Contains(t, out, intelligence.MsgConnectionError)
	assert.NotContains(t, out, "status 500")
}

func TestAskCmd_JSON(t *testing.T) {
	completer := &testutil.FakeCompleter{Response: "Taux : 3,5% l'an - net d'impôts"}
	app := testApp(t, completer, nil)

	out, err := executeCmd(t, app, "ask", "--json", "Quel est le taux d'épargne ?")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, false, got["filtered"])
	assert.Equal(t, "Taux : 3,5% l'an\n• net d'impôts", got["response"])
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{}, nil)

	_, err := executeCmd(t, app, "ask")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "ask", "   ")
	assert.Error(t, err)
}

func TestAskCmd_RecordsMetrics(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{Response: "ok"}, nil)

	_, err := executeCmd(t, app, "ask", "Qui est la BNDE ?")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "ask", "Raconte une blague")
	require.NoError(t, err)

	assert.InDelta(t, 1, promtest.ToFloat64(app.Metrics.AsksTotal.WithLabelValues("answered", "")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(app.Metrics.AsksTotal.WithLabelValues("filtered", "")), 0)
}

// --- flags ---

func TestFlags_OverrideConfig(t *testing.T) {
	var got llm.LLMConfig
	app := testApp(t, &testutil.FakeCompleter{Response: "ok"}, &got)

	_, err := executeCmd(t, app, "ask",
		"--endpoint", "http://llm.internal:3000/",
		"--model", "mistral:instruct",
		"--timeout", "1500ms",
		"Qui est la BNDE ?")
	require.NoError(t, err)

	assert.Equal(t, "http://llm.internal:3000", got.Endpoint)
	assert.Equal(t, "mistral:instruct", got.Model)
	assert.Equal(t, 1500*time.Millisecond, got.Timeout())
}

func TestFlags_UnsetFlagsKeepConfig(t *testing.T) {
	var got llm.LLMConfig
	app := testApp(t, &testutil.FakeCompleter{Response: "ok"}, &got)
	app.Config.LLM.Endpoint = "http://from-env"
	app.Config.LLM.Model = "env-model"

	_, err := executeCmd(t, app, "ask", "Qui est la BNDE ?")
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", got.Endpoint)
	assert.Equal(t, "env-model", got.Model)
}

func TestFlags_Invalid(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{}, nil)

	_, err := executeCmd(t, app, "ask", "--model", " ", "Qui est la BNDE ?")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "ask", "--timeout", "0s", "Qui est la BNDE ?")
	assert.Error(t, err)
}

// --- faq ---

func TestFAQCmd_ListsQuestions(t *testing.T) {
	completer := &testutil.FakeCompleter{}
	app := testApp(t, completer, nil)

	out, err := executeCmd(t, app, "faq")
	require.NoError(t, err)

	for i, q := range knowledge.FrequentQuestions() {
		assert.Contains(t, out, fmt.Sprintf("/%d", i+1))
		assert.Contains(t, out, q)
	}
	assert.Zero(t, completer.Calls())
}

func TestFAQCmd_AsksByNumber(t *testing.T) {
	completer := &testutil.FakeCompleter{Response: "Taux : 3,5% l'an"}
	app := testApp(t, completer, nil)

	out, err := executeCmd(t, app, "faq", "2")
	require.NoError(t, err)

	assert.Contains(t, out, knowledge.FrequentQuestions()[1])
	assert.Contains(t, out, "3,5% l'an")
	require.Len(t, completer.Prompts(), 1)
	assert.Contains(t, completer.Prompts()[0], "Question: "+knowledge.FrequentQuestions()[1])
}

func TestFAQCmd_InvalidNumber(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{}, nil)

	for _, arg := range []string{"0", "4", "deux"} {
		_, err := executeCmd(t, app, "faq", arg)
		assert.Error(t, err, arg)
	}
}

// --- about ---

func TestAboutCmd_NotConfigured(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{Reachable: true}, nil)

	out, err := executeCmd(t, app, "about")
	require.NoError(t, err)

	assert.Contains(t, out, "Les documents requis")
	assert.Contains(t, out, "non configuré")
}

func TestAboutCmd_Reachability(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{Reachable: true}, nil)
	out, err := executeCmd(t, app, "about", "--endpoint", "http://llm.internal")
	require.NoError(t, err)
	assert.Contains(t, out, "http://llm.internal")
	assert.Contains(t, out, "● joignable")

	app = testApp(t, &testutil.FakeCompleter{Reachable: false}, nil)
	out, err = executeCmd(t, app, "about", "--endpoint", "http://llm.internal")
	require.NoError(t, err)
	assert.Contains(t, out, "● injoignable")
}

// --- chat (non-interactive) ---

func TestChatCmd_REPLConversation(t *testing.T) {
	completer := &testutil.FakeCompleter{Response: "Réponse BNDE"}
	app := testApp(t, completer, nil)

	input := strings.Join([]string{
		"Qui est la BNDE ?",
		"Quelle météo ?",
		"/history",
		"/quit",
		"Jamais lu",
	}, "\n") + "\n"

	out, err := executeCmdWithInput(t, app, input, "chat")
	require.NoError(t, err)

	assert.Contains(t, out, "Banque Nationale pour le Développement Économique")
	assert.Contains(t, out, "Réponse BNDE")
	assert.Contains(t, out, "Vous : Qui est la BNDE ?")
	assert.Contains(t, out, "Vous : Quelle météo ?")
	assert.Equal(t, 1, completer.Calls())
}

func TestChatCmd_EOFEndsSession(t *testing.T) {
	app := testApp(t, &testutil.FakeCompleter{Response: "ok"}, nil)

	out, err := executeCmdWithInput(t, app, "", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, replPrompt)
}

func TestChatCmd_LastLineWithoutNewline(t *testing.T) {
	completer := &testutil.FakeCompleter{Response: "ok"}
	app := testApp(t, completer, nil)

	_, err := executeCmdWithInput(t, app, "Qui est la BNDE ?", "chat")
	require.NoError(t, err)
	assert.Equal(t, 1, completer.Calls())
}

// collapseSpace joins wrapped lines and strips box borders so long
// messages can be matched as one string.
func collapseSpace(s string) string {
	s = strings.NewReplacer("│", " ", "╭", " ", "╮", " ", "╰", " ", "╯", " ", "─", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
