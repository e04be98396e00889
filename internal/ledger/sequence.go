package ledger

import "sync"

// Sequence allocates record identifiers. Ids start at 1, advance by exactly
// one per committed creation, and are never reused; 0 is the "absent"
// sentinel and is never issued.
//
// Stores must call Next only inside their commit critical section, after all
// validation has passed, so a failed creation never consumes an id.
type Sequence struct {
	mu   sync.RWMutex
	last uint64
}

// NewSequence returns a sequence whose first Next yields 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next advances the counter and returns the newly allocated id.
func (s *Sequence) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Current returns the highest id allocated so far, 0 when none.
func (s *Sequence) Current() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// InRange reports whether id refers to an allocated record slot.
func (s *Sequence) InRange(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return id != 0 && id <= s.last
}
