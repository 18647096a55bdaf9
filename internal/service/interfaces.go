package service

import (
	"context"

	"github.com/bnde/leuk/internal/domain"
	"github.com/bnde/leuk/internal/intelligence"
)

// Turn is one question and the answer recorded for it.
type Turn struct {
	Question *domain.ChatMessage
	Answer   *domain.ChatMessage
	Result   intelligence.AskResult
}

// ChatService manages caller-owned chat sessions. The session value is
// passed into every call; the service keeps no per-session state of its
// own beyond the history store. A single session must not be used from
// several goroutines at once.
type ChatService interface {
	Start(ctx context.Context) (*domain.ChatSession, error)
	Submit(ctx context.Context, session *domain.ChatSession, question string) (*Turn, error)
	History(ctx context.Context, session *domain.ChatSession) ([]*domain.ChatMessage, error)
	Reset(ctx context.Context, session *domain.ChatSession) error
}
