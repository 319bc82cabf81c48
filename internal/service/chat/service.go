package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lukemarsh/sentichat/internal/model/chat"
)

// Service holds the append-only in-memory chat log. The log lives for the
// process lifetime; restarting the server starts an empty history.
type Service struct {
	mu  sync.RWMutex
	log []chat.Message
}

// NewService bootstraps the in-memory chat log.
func NewService() *Service {
	return &Service{log: make([]chat.Message, 0, 64)}
}

// Append normalizes and stores a message, returning the stored record.
// Missing sender and timestamp fields are coerced to defaults rather than
// rejected.
func (s *Service) Append(_ context.Context, msg chat.Message) chat.Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Sender == "" {
		msg.Sender = chat.DefaultSender
	}
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	s.mu.Lock()
	s.log = append(s.log, msg)
	s.mu.Unlock()

	return msg
}

// History returns a copy of the full log in append order.
func (s *Service) History(_ context.Context) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.log))
	copy(copied, s.log)
	return copied
}

// Len reports the current log length.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}
