// Package chat persists conversation transcripts.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/model/chat"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrInvalidRole     = errors.New("invalid message role")
)

var log = logrus.WithField("component", "transcript")

// Log is an append-only transcript keyed by session id.
type Log interface {
	Append(ctx context.Context, message chat.Message) (chat.Message, error)
	// History returns the newest limit messages in chronological order; a
	// non-positive limit returns everything.
	History(ctx context.Context, sessionID string, limit int) ([]chat.Message, error)
	Close() error
}

// Service keeps transcripts in memory, suitable for development and tests.
type Service struct {
	mu       sync.RWMutex
	messages map[string][]chat.Message
}

// NewService bootstraps the in-memory transcript log.
func NewService() *Service {
	return &Service{messages: make(map[string][]chat.Message)}
}

// NewSessionID returns a fresh anonymous session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Append stores a message, filling in its ID and timestamp.
func (s *Service) Append(_ context.Context, message chat.Message) (chat.Message, error) {
	message, err := prepare(message)
	if err != nil {
		return chat.Message{}, err
	}

	s.mu.Lock()
	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	s.mu.Unlock()
	return message, nil
}

// History returns stored messages for the session. Unknown sessions have an
// empty history.
func (s *Service) History(_ context.Context, sessionID string, limit int) ([]chat.Message, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.messages[sessionID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Close is a no-op for the in-memory log.
func (s *Service) Close() error { return nil }

func prepare(message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionRequired
	}
	if _, ok := chat.ParseRole(string(message.Role)); !ok {
		return chat.Message{}, ErrInvalidRole
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	return message, nil
}
