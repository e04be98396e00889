package task

import (
	"context"
	"sync"

	"orgnet/internal/ledger"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// InMemoryStore keeps task state in process, mutations serialized behind one
// mutex.
type InMemoryStore struct {
	mu      sync.RWMutex
	seq     *ledger.Sequence
	records map[uint64]Task
	// byParticipant indexes ids under both assigner and assignee so "my
	// tasks" answers either role from one lookup.
	byParticipant *ledger.AppendIndex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		seq:           ledger.NewSequence(),
		records:       make(map[uint64]Task),
		byParticipant: ledger.NewAppendIndex(),
	}
}

func (s *InMemoryStore) Create(_ context.Context, t Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.seq.Next()
	s.records[t.ID] = t
	s.byParticipant.Append(t.Assigner.String(), t.ID)
	if t.Assignee != t.Assigner {
		s.byParticipant.Append(t.Assignee.String(), t.ID)
	}
	return t, nil
}

func (s *InMemoryStore) Get(_ context.Context, taskID uint64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(taskID)
}

func (s *InMemoryStore) get(taskID uint64) (Task, error) {
	if !s.seq.InRange(taskID) {
		return Task{}, ledger.ErrNotFound
	}
	t, ok := s.records[taskID]
	if !ok {
		return Task{}, dErrors.Newf(dErrors.CodeInternal, "task %d allocated but missing", taskID)
	}
	return t, nil
}

func (s *InMemoryStore) ListByPrincipal(_ context.Context, p id.Principal) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byParticipant.List(p.String())
	out := make([]Task, 0, len(ids))
	for _, taskID := range ids {
		t, err := s.get(taskID)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, taskID uint64, next Status) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.get(taskID)
	if err != nil {
		return Task{}, err
	}
	if !next.IsValid() {
		return Task{}, dErrors.Newf(dErrors.CodeValidation, "unknown task status %q", next)
	}
	t.Status = next
	s.records[taskID] = t
	return t, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
