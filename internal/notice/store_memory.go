package notice

import (
	"context"
	"sync"

	"orgnet/internal/ledger"
	dErrors "orgnet/pkg/domain-errors"
)

// InMemoryStore keeps notice state in process.
type InMemoryStore struct {
	mu         sync.RWMutex
	seq        *ledger.Sequence
	records    map[uint64]Notice
	byCategory *ledger.AppendIndex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		seq:        ledger.NewSequence(),
		records:    make(map[uint64]Notice),
		byCategory: ledger.NewAppendIndex(),
	}
}

func (s *InMemoryStore) Create(_ context.Context, n Notice) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.seq.Next()
	s.records[n.ID] = n
	s.byCategory.Append(string(n.Category), n.ID)
	return n, nil
}

func (s *InMemoryStore) Get(_ context.Context, noticeID uint64) (Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(noticeID)
}

func (s *InMemoryStore) get(noticeID uint64) (Notice, error) {
	if !s.seq.InRange(noticeID) {
		return Notice{}, ledger.ErrNotFound
	}
	n, ok := s.records[noticeID]
	if !ok {
		return Notice{}, dErrors.Newf(dErrors.CodeInternal, "notice %d allocated but missing", noticeID)
	}
	return n, nil
}

func (s *InMemoryStore) ListByCategory(_ context.Context, category Category) ([]Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byCategory.List(string(category))
	out := make([]Notice, 0, len(ids))
	for _, noticeID := range ids {
		n, err := s.get(noticeID)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
