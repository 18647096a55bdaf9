package repository

import (
	"context"

	"github.com/bnde/leuk/internal/domain"
)

type ChatSessionRepo interface {
	Create(ctx context.Context, s *domain.ChatSession) error
	GetByID(ctx context.Context, id string) (*domain.ChatSession, error)
	Delete(ctx context.Context, id string) error
}

type ChatMessageRepo interface {
	// Append stores m with the next sequence number of its session and
	// sets m.Seq.
	Append(ctx context.Context, m *domain.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
}
