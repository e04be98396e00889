package payment

import (
	"context"
	"sync"

	"orgnet/internal/ledger"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// InMemoryStore keeps payment state in process.
type InMemoryStore struct {
	mu          sync.RWMutex
	seq         *ledger.Sequence
	records     map[uint64]Payment
	byRecipient *ledger.AppendIndex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		seq:         ledger.NewSequence(),
		records:     make(map[uint64]Payment),
		byRecipient: ledger.NewAppendIndex(),
	}
}

func (s *InMemoryStore) Create(_ context.Context, p Payment) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.seq.Next()
	s.records[p.ID] = p
	s.byRecipient.Append(p.Employee.String(), p.ID)
	return p, nil
}

func (s *InMemoryStore) Get(_ context.Context, paymentID uint64) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(paymentID)
}

func (s *InMemoryStore) get(paymentID uint64) (Payment, error) {
	if !s.seq.InRange(paymentID) {
		return Payment{}, ledger.ErrNotFound
	}
	p, ok := s.records[paymentID]
	if !ok {
		return Payment{}, dErrors.Newf(dErrors.CodeInternal, "payment %d allocated but missing", paymentID)
	}
	return p, nil
}

func (s *InMemoryStore) ListByRecipient(_ context.Context, recipient id.Principal) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byRecipient.List(recipient.String())
	out := make([]Payment, 0, len(ids))
	for _, paymentID := range ids {
		p, err := s.get(paymentID)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *InMemoryStore) MarkPaid(_ context.Context, paymentID uint64) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.get(paymentID)
	if err != nil {
		return Payment{}, err
	}
	if !p.Status.CanTransitionTo(StatusPaid) {
		return Payment{}, dErrors.Newf(dErrors.CodeInvalidTransition, "payment %d already %s", paymentID, p.Status)
	}
	p.Status = StatusPaid
	s.records[paymentID] = p
	return p, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
