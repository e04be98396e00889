package leave

import (
	"context"
	"sync"
	"time"

	"orgnet/internal/ledger"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// InMemoryStore keeps leave-request state in process.
type InMemoryStore struct {
	mu         sync.RWMutex
	seq        *ledger.Sequence
	records    map[uint64]Leave
	byEmployee *ledger.AppendIndex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		seq:        ledger.NewSequence(),
		records:    make(map[uint64]Leave),
		byEmployee: ledger.NewAppendIndex(),
	}
}

func (s *InMemoryStore) Create(_ context.Context, l Leave) (Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.seq.Next()
	s.records[l.ID] = l
	s.byEmployee.Append(l.Employee.String(), l.ID)
	return l, nil
}

func (s *InMemoryStore) Get(_ context.Context, leaveID uint64) (Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(leaveID)
}

func (s *InMemoryStore) get(leaveID uint64) (Leave, error) {
	if !s.seq.InRange(leaveID) {
		return Leave{}, ledger.ErrNotFound
	}
	l, ok := s.records[leaveID]
	if !ok {
		return Leave{}, dErrors.Newf(dErrors.CodeInternal, "leave %d allocated but missing", leaveID)
	}
	return l, nil
}

func (s *InMemoryStore) ListByEmployee(_ context.Context, employee id.Principal) ([]Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byEmployee.List(employee.String())
	out := make([]Leave, 0, len(ids))
	for _, leaveID := range ids {
		l, err := s.get(leaveID)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *InMemoryStore) ListPending(_ context.Context) ([]Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Leave{}
	for leaveID := uint64(1); leaveID <= s.seq.Current(); leaveID++ {
		l, err := s.get(leaveID)
		if err != nil {
			return nil, err
		}
		if l.Status == StatusPending {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, leaveID uint64, next Status) (Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.get(leaveID)
	if err != nil {
		return Leave{}, err
	}
	if !l.Status.CanTransitionTo(next) {
		return Leave{}, dErrors.Newf(dErrors.CodeInvalidTransition,
			"leave %d cannot move from %s to %s", leaveID, l.Status, next)
	}
	l.Status = next
	s.records[leaveID] = l
	return l, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// InMemoryHolidayStore keeps the holiday calendar in process.
type InMemoryHolidayStore struct {
	mu      sync.RWMutex
	seq     *ledger.Sequence
	byDate  *ledger.UniqueIndex
	entries []Holiday
}

func NewInMemoryHolidayStore() *InMemoryHolidayStore {
	return &InMemoryHolidayStore{
		seq:    ledger.NewSequence(),
		byDate: ledger.NewUniqueIndex(),
	}
}

func (s *InMemoryHolidayStore) Add(_ context.Context, h Holiday) (Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byDate.Exists(DayKey(h.Date)) {
		return Holiday{}, ledger.ErrDuplicateKey
	}
	h.ID = s.seq.Next()
	if err := s.byDate.Reserve(DayKey(h.Date), h.ID); err != nil {
		return Holiday{}, err
	}
	s.entries = append(s.entries, h)
	return h, nil
}

func (s *InMemoryHolidayStore) List(_ context.Context) ([]Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Holiday{}, s.entries...), nil
}

// InMemoryAttendanceStore keeps presence marks in process.
type InMemoryAttendanceStore struct {
	mu    sync.RWMutex
	byDay *ledger.UniqueIndex
	byWho *ledger.AppendIndex
	marks []Attendance
}

func NewInMemoryAttendanceStore() *InMemoryAttendanceStore {
	return &InMemoryAttendanceStore{
		byDay: ledger.NewUniqueIndex(),
		byWho: ledger.NewAppendIndex(),
	}
}

func markKey(employee id.Principal, date time.Time) string {
	return employee.String() + "|" + DayKey(date)
}

func (s *InMemoryAttendanceStore) Mark(_ context.Context, a Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := uint64(len(s.marks)) + 1
	if err := s.byDay.Reserve(markKey(a.Employee, a.Date), seq); err != nil {
		return err
	}
	s.marks = append(s.marks, a)
	s.byWho.Append(a.Employee.String(), seq)
	return nil
}

func (s *InMemoryAttendanceStore) ListRange(_ context.Context, employee id.Principal, from, to time.Time) ([]Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Attendance{}
	for _, idx := range s.byWho.List(employee.String()) {
		mark := s.marks[idx-1]
		key := DayKey(mark.Date)
		if key >= DayKey(from) && key <= DayKey(to) {
			out = append(out, mark)
		}
	}
	return out, nil
}
