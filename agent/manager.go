package agent

import (
	"context"
	"sync"
	"time"

	"github.com/citadel/authagent/azureai"
	"github.com/citadel/authagent/domain"
)

// Manager tracks live sessions by ID and serializes turns per session. The
// transcript itself is not designed for concurrent writers, so the manager
// enforces one in-flight turn per session on behalf of the HTTP surface.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession

	config       *azureai.Config
	timeout      time.Duration
	systemPrompt string
}

type managedSession struct {
	mu      sync.Mutex
	session *Session
}

// NewManager creates a session manager. cfg may be nil, in which case each
// session resolves its configuration from the environment on first use.
// Sessions are seeded with systemPrompt when it is non-empty.
func NewManager(cfg *azureai.Config, timeout time.Duration, systemPrompt string) *Manager {
	return &Manager{
		sessions:     make(map[string]*managedSession),
		config:       cfg,
		timeout:      timeout,
		systemPrompt: systemPrompt,
	}
}

// Ensure returns the live session for sessionID, creating and seeding it
// when absent.
func (m *Manager) Ensure(sessionID string) *Session {
	return m.ensure(sessionID).session
}

func (m *Manager) ensure(sessionID string) *managedSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[sessionID]
	if !ok {
		session := NewSession(m.config, m.timeout)
		if m.systemPrompt != "" {
			_ = session.Append(domain.RoleSystem, m.systemPrompt)
		}
		ms = &managedSession{session: session}
		m.sessions[sessionID] = ms
	}
	return ms
}

// Process runs one completion turn on the session identified by sessionID,
// creating the session on first use. Turns on the same session are
// serialized.
func (m *Manager) Process(ctx context.Context, sessionID, content string) (Reply, error) {
	ms := m.ensure(sessionID)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.session.Process(ctx, content)
}

// Snapshot returns the live transcript for sessionID, or nil when no live
// session exists.
func (m *Manager) Snapshot(sessionID string) []domain.Message {
	m.mu.Lock()
	ms, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.session.Snapshot()
}
