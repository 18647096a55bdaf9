package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnde/leuk/internal/db"
	"github.com/bnde/leuk/internal/domain"
	"github.com/bnde/leuk/internal/intelligence"
	"github.com/bnde/leuk/internal/repository"
	"github.com/google/uuid"
)

// ErrEmptyQuestion is returned by Submit for blank input. Nothing is
// recorded and no pipeline call is made.
var ErrEmptyQuestion = errors.New("empty question")

type chatService struct {
	ask      intelligence.AskService
	sessions repository.ChatSessionRepo
	messages repository.ChatMessageRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewChatService(
	ask intelligence.AskService,
	sessions repository.ChatSessionRepo,
	messages repository.ChatMessageRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		ask:      ask,
		sessions: sessions,
		messages: messages,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *chatService) Start(ctx context.Context) (*domain.ChatSession, error) {
	session := &domain.ChatSession{
		ID:        uuid.New().String(),
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("starting chat session: %w", err)
	}
	return session, nil
}

// Submit runs the question through the pipeline and records the question
// and its answer as one unit. Failed answers are recorded with their fixed
// failure message and Failed set.
func (s *chatService) Submit(ctx context.Context, session *domain.ChatSession, question string) (turn *Turn, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session": session.ID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if _, err = s.sessions.GetByID(ctx, session.ID); err != nil {
		return nil, err
	}

	result := s.ask.Ask(ctx, question)
	fields["outcome"] = string(result.Outcome)

	now := s.now()
	turn = &Turn{
		Question: &domain.ChatMessage{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Role:      domain.RoleUser,
			Content:   question,
			CreatedAt: now,
		},
		Answer: &domain.ChatMessage{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Role:      domain.RoleAssistant,
			Content:   result.Response,
			Filtered:  result.Filtered,
			Failed:    !result.Success,
			CreatedAt: now,
		},
		Result: result,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMessages := repository.NewSQLiteChatMessageRepo(tx)
		if err := txMessages.Append(ctx, turn.Question); err != nil {
			return err
		}
		return txMessages.Append(ctx, turn.Answer)
	})
	if err != nil {
		return nil, fmt.Errorf("recording turn: %w", err)
	}
	return turn, nil
}

func (s *chatService) History(ctx context.Context, session *domain.ChatSession) ([]*domain.ChatMessage, error) {
	return s.messages.ListBySession(ctx, session.ID)
}

func (s *chatService) Reset(ctx context.Context, session *domain.ChatSession) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"session": session.ID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var n int64
	n, err = s.messages.DeleteBySession(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("resetting chat session: %w", err)
	}
	fields["deleted"] = n
	return nil
}
