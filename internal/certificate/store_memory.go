package certificate

import (
	"context"
	"sync"

	"orgnet/internal/ledger"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// InMemoryStore keeps certificate state in process. Mutations serialize
// behind one mutex so each commit is all-or-nothing; reads see only committed
// state.
type InMemoryStore struct {
	mu       sync.RWMutex
	seq      *ledger.Sequence
	records  map[uint64]Certificate
	byHash   *ledger.UniqueIndex
	byIssuer *ledger.AppendIndex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		seq:      ledger.NewSequence(),
		records:  make(map[uint64]Certificate),
		byHash:   ledger.NewUniqueIndex(),
		byIssuer: ledger.NewAppendIndex(),
	}
}

func (s *InMemoryStore) Create(_ context.Context, cert Certificate) (Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Uniqueness is checked before allocation so a duplicate never burns an id.
	if s.byHash.Exists(cert.ContentHash) {
		return Certificate{}, ledger.ErrDuplicateKey
	}

	cert.ID = s.seq.Next()
	if err := s.byHash.Reserve(cert.ContentHash, cert.ID); err != nil {
		return Certificate{}, err
	}
	s.records[cert.ID] = cert
	s.byIssuer.Append(cert.Issuer.String(), cert.ID)
	return cert, nil
}

func (s *InMemoryStore) Get(_ context.Context, certID uint64) (Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(certID)
}

func (s *InMemoryStore) get(certID uint64) (Certificate, error) {
	if !s.seq.InRange(certID) {
		return Certificate{}, ledger.ErrNotFound
	}
	cert, ok := s.records[certID]
	if !ok {
		return Certificate{}, dErrors.Newf(dErrors.CodeInternal, "certificate %d allocated but missing", certID)
	}
	return cert, nil
}

func (s *InMemoryStore) GetByHash(_ context.Context, contentHash string) (Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	certID, ok := s.byHash.Lookup(contentHash)
	if !ok {
		return Certificate{}, ledger.ErrNotFound
	}
	return s.get(certID)
}

func (s *InMemoryStore) ListByIssuer(_ context.Context, issuer id.Principal) ([]Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byIssuer.List(issuer.String())
	out := make([]Certificate, 0, len(ids))
	for _, certID := range ids {
		cert, err := s.get(certID)
		if err != nil {
			return nil, err
		}
		out = append(out, cert)
	}
	return out, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, certID uint64, next Status) (Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cert, err := s.get(certID)
	if err != nil {
		return Certificate{}, err
	}
	if !cert.Status.CanTransitionTo(next) {
		return Certificate{}, dErrors.Newf(dErrors.CodeInvalidTransition,
			"certificate %d cannot move from %s to %s", certID, cert.Status, next)
	}
	cert.Status = next
	s.records[certID] = cert
	return cert, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
