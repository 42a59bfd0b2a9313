// Package store defines the transcript archive interface and
// implementations. The archive mirrors live transcripts for inspection; the
// in-memory transcript remains the source of truth for completion calls.
package store

import (
	"context"

	"github.com/citadel/authagent/domain"
)

// Store defines the interface for transcript archival.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error)

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int, before string) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
