package cli

import (
	"fmt"

	"github.com/bnde/leuk/internal/config"
	"github.com/bnde/leuk/internal/db"
	"github.com/bnde/leuk/internal/intelligence"
	"github.com/bnde/leuk/internal/llm"
	"github.com/bnde/leuk/internal/metrics"
	"github.com/bnde/leuk/internal/repository"
	"github.com/bnde/leuk/internal/service"
	"go.uber.org/zap"
)

// App holds configuration and the services shared by CLI commands.
// Services are built lazily by wire, after flag overrides are applied.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// IsInteractive reports whether stdin and stdout are a terminal.
	// When nil, commands behave as if they were not.
	IsInteractive func() bool

	// NewCompleter builds the completion client. Defaults to llm.NewChatClient.
	NewCompleter func(cfg llm.LLMConfig, observer llm.Observer) llm.Completer

	completer llm.Completer
	ask       intelligence.AskService
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// wire builds the completion client and ask pipeline from the current config.
func (a *App) wire() {
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	if a.Metrics == nil {
		a.Metrics = metrics.New()
	}
	newCompleter := a.NewCompleter
	if newCompleter == nil {
		newCompleter = llm.NewChatClient
	}

	llmObservers := llm.MultiObserver{a.Metrics}
	if a.Config.LLM.LogCalls {
		llmObservers = append(llmObservers, llm.NewLogObserver(a.Logger))
	}
	a.completer = newCompleter(a.Config.LLM, llmObservers)
	a.ask = intelligence.NewDefaultAskService(a.completer, intelligence.MultiAskObserver{
		a.Metrics,
		intelligence.NewLogAskObserver(a.Logger),
	})
}

// openChat opens an in-memory history store and returns a chat service
// over it. The returned close func releases the store.
func (a *App) openChat() (service.ChatService, func() error, error) {
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history store: %w", err)
	}
	chat := service.NewChatService(
		a.ask,
		repository.NewSQLiteChatSessionRepo(database),
		repository.NewSQLiteChatMessageRepo(database),
		db.NewSQLiteUnitOfWork(database),
		service.NewLogUseCaseObserver(a.Logger),
	)
	return chat, database.Close, nil
}
