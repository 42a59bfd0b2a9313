package domain

import "time"

// Session represents a conversation session.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message represents a single message in a session transcript. A message is
// immutable once created; the transcript that holds it is its sole owner.
type Message struct {
	MessageID string    `json:"message_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Role      Role      `json:"role"` // user, assistant, system
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
