// Package agent implements the conversational session core: an append-only
// transcript and a lazily initialized completion client wrapped around it.
package agent

import (
	"time"

	"github.com/citadel/authagent/azureai"
	"github.com/citadel/authagent/domain"
)

// Transcript is an ordered, append-only log of role-tagged messages. It is
// the single source of truth sent with every completion request: messages
// are never removed, reordered, or mutated once appended, so the context fed
// back to the model always matches what was actually observed, error notices
// included.
//
// A Transcript is not safe for concurrent use; a session has at most one
// turn in flight at a time.
type Transcript struct {
	messages []domain.Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append validates the role and appends a new message. When the role is
// outside the closed set the transcript is left unchanged and an
// InvalidRoleError is returned.
func (t *Transcript) Append(role domain.Role, content string) error {
	if !role.Valid() {
		return &domain.InvalidRoleError{Role: string(role)}
	}
	t.messages = append(t.messages, domain.Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	return nil
}

// Snapshot returns the transcript in insertion order. The returned slice is
// a copy; mutating it does not affect the transcript.
func (t *Transcript) Snapshot() []domain.Message {
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// wire converts the transcript to the minimal role/content shape the
// completion endpoint expects, preserving insertion order.
func (t *Transcript) wire() []azureai.ChatMessage {
	out := make([]azureai.ChatMessage, len(t.messages))
	for i, m := range t.messages {
		out[i] = azureai.ChatMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}
