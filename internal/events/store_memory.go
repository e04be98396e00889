package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore keeps the authoritative in-process event trail. It
// intentionally favors clarity over performance: the trail grows with
// organizational activity volume, which is bounded.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Seq = uint64(len(s.entries)) + 1
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	s.entries = append(s.entries, event)
	return event, nil
}

func (s *InMemoryStore) List(_ context.Context, after uint64, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if after >= uint64(len(s.entries)) {
		return []Event{}, nil
	}
	tail := s.entries[after:]
	if limit > 0 && limit < len(tail) {
		tail = tail[:limit]
	}
	return append([]Event{}, tail...), nil
}

func (s *InMemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
