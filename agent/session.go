package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citadel/authagent/azureai"
	"github.com/citadel/authagent/domain"
)

// ErrNotInitialized is returned by Send when the completion client has not
// been initialized. Process initializes the client on first use instead.
var ErrNotInitialized = errors.New("completion client not initialized")

// CompletionClient is the remote completion boundary. *azureai.Client is the
// production implementation.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, messages []azureai.ChatMessage) (*azureai.ChatCompletionResponse, error)
}

// Reply is the outcome of one completion turn. Reported marks replies whose
// Text describes a remote failure recorded in the transcript rather than
// assistant output.
type Reply struct {
	Text     string `json:"text"`
	Reported bool   `json:"reported"`
}

// Session owns one transcript and one completion client. The client starts
// uninitialized and becomes ready at most once per session; once ready it
// never returns to uninitialized.
//
// A Session is not safe for concurrent use; callers must not overlap turns.
type Session struct {
	transcript *Transcript
	config     *azureai.Config
	client     CompletionClient
	timeout    time.Duration
}

// NewSession creates an uninitialized session. cfg may be nil, in which case
// Initialize resolves the endpoint configuration from the environment.
func NewSession(cfg *azureai.Config, timeout time.Duration) *Session {
	return &Session{
		transcript: NewTranscript(),
		config:     cfg,
		timeout:    timeout,
	}
}

// NewSessionWithClient creates a session that is ready immediately, bound to
// the given completion client.
func NewSessionWithClient(client CompletionClient) *Session {
	return &Session{
		transcript: NewTranscript(),
		client:     client,
	}
}

// Ready reports whether the completion client has been initialized.
func (s *Session) Ready() bool {
	return s.client != nil
}

// Initialize binds the completion client. When no configuration was
// supplied explicitly, the four required values are read from the
// environment; one or more missing values fail with
// azureai.MissingConfigError before any client exists. Initializing a ready
// session is a no-op.
func (s *Session) Initialize() error {
	if s.client != nil {
		return nil
	}
	if s.config == nil {
		cfg, err := azureai.ConfigFromEnv()
		if err != nil {
			return err
		}
		s.config = &cfg
	}
	client, err := azureai.NewClient(*s.config, s.timeout)
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

// Append adds a message to the transcript.
func (s *Session) Append(role domain.Role, content string) error {
	return s.transcript.Append(role, content)
}

// Snapshot returns the transcript in insertion order.
func (s *Session) Snapshot() []domain.Message {
	return s.transcript.Snapshot()
}

// Send runs one completion turn. The session must already be ready; a
// never-initialized session gets ErrNotInitialized and an untouched
// transcript.
func (s *Session) Send(ctx context.Context, content string) (Reply, error) {
	if s.client == nil {
		return Reply{}, ErrNotInitialized
	}
	return s.turn(ctx, content)
}

// Process runs one completion turn, initializing the completion client on
// first use. Initialization failures are returned synchronously and are
// never recorded in the transcript.
func (s *Session) Process(ctx context.Context, content string) (Reply, error) {
	if err := s.Initialize(); err != nil {
		return Reply{}, err
	}
	return s.turn(ctx, content)
}

// turn appends the user message, sends the entire transcript, and appends
// the outcome. Remote failures are recorded as system messages and returned
// as a reported reply rather than an error, so the session stays usable for
// further turns.
func (s *Session) turn(ctx context.Context, content string) (Reply, error) {
	if err := s.transcript.Append(domain.RoleUser, content); err != nil {
		return Reply{}, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, s.transcript.wire())
	var text string
	if err == nil {
		text, err = resp.ReplyText()
	}
	if err != nil {
		notice := fmt.Sprintf("Error communicating with Azure OpenAI API: %v", err)
		_ = s.transcript.Append(domain.RoleSystem, notice)
		return Reply{Text: notice, Reported: true}, nil
	}

	_ = s.transcript.Append(domain.RoleAssistant, text)
	return Reply{Text: text}, nil
}
