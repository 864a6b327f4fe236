package models

// MessageRole identifies the author of a conversation turn.
type MessageRole string

const (
	// RoleSystem marks instructions for the generation backend.
	RoleSystem MessageRole = "system"
	// RoleUser marks a turn authored by the student.
	RoleUser MessageRole = "user"
	// RoleAssistant marks a turn authored by the system.
	RoleAssistant MessageRole = "assistant"
)

// Message is a single conversation turn. The conversation is
// append-only; the engine never reorders or truncates it (prompt-size
// truncation is a per-agent concern).
type Message struct {
	// Role is the author of this turn.
	Role MessageRole `json:"role"`
	// Content is the turn's text.
	Content string `json:"content"`
}

// Truncate returns the message content cut to at most n runes, with an
// ellipsis appended when content was dropped.
func (m Message) Truncate(n int) string {
	runes := []rune(m.Content)
	if len(runes) <= n {
		return m.Content
	}
	return string(runes[:n]) + "..."
}
