package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"govledger/contexts/ledger-apps/message-board/domain/entities"
	"govledger/contexts/ledger-apps/message-board/ports"
)

type Store struct {
	mu       sync.RWMutex
	messages map[string]entities.Message
}

func NewStore() *Store {
	return &Store{
		messages: make(map[string]entities.Message),
	}
}

func (s *Store) CreateMessage(_ context.Context, message entities.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[message.MessageID] = message
	return nil
}

func (s *Store) GetMessage(_ context.Context, id string) (entities.Message, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	message, ok := s.messages[id]
	return message, ok, nil
}

func (s *Store) UpdateMessage(_ context.Context, input ports.UpdateMessageInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message := s.messages[input.MessageID]
	message.Content = input.Content
	message.UpdatedAt = input.At
	s.messages[input.MessageID] = message
	return nil
}

func (s *Store) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, id)
	return nil
}

func (s *Store) ListMessages(_ context.Context, limit int) ([]entities.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Message, 0, len(s.messages))
	for _, message := range s.messages {
		items = append(items, message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PostedAt.After(items[j].PostedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.Repository  = (*Store)(nil)
	_ ports.Clock       = (*Store)(nil)
	_ ports.IDGenerator = (*Store)(nil)
)
