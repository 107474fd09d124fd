package docchat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one transcript entry. IDs are generated at creation and never
// reused; order in the transcript is strictly insertion order. User content
// is immutable once appended. Assistant content starts empty and grows
// monotonically while a reply streams, then becomes immutable.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewUserMessage creates a user message with the given content.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an empty assistant message. The session
// appends it as a placeholder before any reply bytes are parsed so the UI
// can render a reply-in-progress affordance deterministically.
func NewAssistantMessage() Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
	}
}
