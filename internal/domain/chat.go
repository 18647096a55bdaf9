package domain

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatSession groups the messages exchanged in one conversation.
type ChatSession struct {
	ID        string
	CreatedAt time.Time
}

// ChatMessage is one entry of a session's history. Seq orders messages
// within a session starting at 1. Filtered marks the domain refusal and
// Failed marks a fixed failure message; neither carries model text.
type ChatMessage struct {
	ID        string
	SessionID string
	Seq       int
	Role      Role
	Content   string
	Filtered  bool
	Failed    bool
	CreatedAt time.Time
}

// IsUser reports whether the message was typed by the user.
func (m *ChatMessage) IsUser() bool {
	return m.Role == RoleUser
}
