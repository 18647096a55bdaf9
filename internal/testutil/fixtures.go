package testutil

import (
	"time"

	"github.com/bnde/leuk/internal/domain"
	"github.com/google/uuid"
)

func NewTestChatSession() *domain.ChatSession {
	return &domain.ChatSession{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
}

// ChatMessage options
type MessageOption func(*domain.ChatMessage)

func AsAssistant() MessageOption {
	return func(m *domain.ChatMessage) {
		m.Role = domain.RoleAssistant
	}
}

func AsFiltered() MessageOption {
	return func(m *domain.ChatMessage) {
		m.Role = domain.RoleAssistant
		m.Filtered = true
	}
}

func AsFailed() MessageOption {
	return func(m *domain.ChatMessage) {
		m.Role = domain.RoleAssistant
		m.Failed = true
	}
}

// NewTestChatMessage builds a user message; options switch it to an
// assistant message.
func NewTestChatMessage(sessionID, content string, opts ...MessageOption) *domain.ChatMessage {
	m := &domain.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
