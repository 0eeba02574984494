package chat

import "time"

// Role tags the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole maps a loosely formatted role string onto a Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser, RoleAssistant, RoleSystem:
		return Role(raw), true
	default:
		return "", false
	}
}

// Message persists individual turns for audit/debug.
type Message struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UserMessage builds a user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant turn.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// LastUserContent returns the content of the most recent user turn.
func LastUserContent(history []Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i].Content, true
		}
	}
	return "", false
}

// CountUserTurns reports how many user turns the history holds.
func CountUserTurns(history []Message) int {
	n := 0
	for _, msg := range history {
		if msg.Role == RoleUser {
			n++
		}
	}
	return n
}
