package intelligence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnde/leuk/internal/knowledge"
	"github.com/bnde/leuk/internal/llm"
)

// User-facing failure messages. They never carry transport details and are
// distinct from the domain refusal.
const (
	MsgConnectionError = "Erreur de connexion. Réessayez."
	MsgTechnicalError  = "Erreur technique. Réessayez."
)

// Outcome tags an AskResult.
type Outcome string

const (
	OutcomeFiltered Outcome = "filtered"
	OutcomeAnswered Outcome = "answered"
	OutcomeFailed   Outcome = "failed"
)

// FailureReason is the internal classification of a failed call.
// It is recorded for logs and metrics, never shown to users.
type FailureReason string

const (
	ReasonNone      FailureReason = ""
	ReasonUpstream  FailureReason = "upstream"
	ReasonTransport FailureReason = "transport"
)

// AskResult is the uniform outcome of one pipeline invocation.
type AskResult struct {
	Outcome  Outcome       `json:"-"`
	Success  bool          `json:"success"`
	Response string        `json:"response"`
	Filtered bool          `json:"filtered"`
	Reason   FailureReason `json:"-"`
}

// AskService answers a single question, gated to the knowledge domain.
type AskService interface {
	// Ask never fails: every invocation yields a result.
	Ask(ctx context.Context, question string) AskResult
}

type askService struct {
	classifier Classifier
	kb         knowledge.KnowledgeBase
	completer  llm.Completer
	observer   AskObserver
	now        func() time.Time
}

// NewAskService creates an AskService. The service holds no per-call state
// and is safe for concurrent use when its collaborators are.
func NewAskService(classifier Classifier, kb knowledge.KnowledgeBase, completer llm.Completer, observer AskObserver) AskService {
	if observer == nil {
		observer = NoopAskObserver{}
	}
	return &askService{
		classifier: classifier,
		kb:         kb,
		completer:  completer,
		observer:   observer,
		now:        time.Now,
	}
}

// NewDefaultAskService wires the built-in keyword set and knowledge base.
func NewDefaultAskService(completer llm.Completer, observer AskObserver) AskService {
	return NewAskService(NewKeywordClassifier(knowledge.DefaultKeywords()), knowledge.Default(), completer, observer)
}

func (s *askService) Ask(ctx context.Context, question string) (result AskResult) {
	start := s.now()
	var cause error

	defer func() {
		if p := recover(); p != nil {
			cause = fmt.Errorf("pipeline panic: %v", p)
			result = failed(ReasonTransport)
		}
		s.observer.OnAsk(AskEvent{
			Outcome:  result.Outcome,
			Reason:   result.Reason,
			Duration: s.now().Sub(start),
			Err:      cause,
		})
	}()

	if s.classifier.Classify(question) != TopicInDomain {
		return AskResult{
			Outcome:  OutcomeFiltered,
			Success:  true,
			Response: s.kb.Refusal,
			Filtered: true,
		}
	}

	prompt := BuildPrompt(question, s.kb)
	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		cause = err
		return failed(failureReason(err))
	}

	return AskResult{
		Outcome:  OutcomeAnswered,
		Success:  true,
		Response: FormatResponse(raw, s.kb.Refusal),
		Filtered: false,
	}
}

func failed(reason FailureReason) AskResult {
	msg := MsgTechnicalError
	if reason == ReasonUpstream {
		msg = MsgConnectionError
	}
	return AskResult{
		Outcome:  OutcomeFailed,
		Success:  false,
		Response: msg,
		Reason:   reason,
	}
}

func failureReason(err error) FailureReason {
	if errors.Is(err, llm.ErrUpstream) {
		return ReasonUpstream
	}
	return ReasonTransport
}
