package leave

import (
	"context"
	"time"

	id "orgnet/pkg/domain"
)

// Store owns canonical leave-request state.
type Store interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	Get(ctx context.Context, leaveID uint64) (Leave, error)
	ListByEmployee(ctx context.Context, employee id.Principal) ([]Leave, error)
	// ListPending scans the full allocated id range and filters by status.
	// Explicitly O(n) in records ever created; acceptable because id space
	// growth is bounded by organizational activity volume.
	ListPending(ctx context.Context) ([]Leave, error)
	UpdateStatus(ctx context.Context, leaveID uint64, next Status) (Leave, error)
	Count(ctx context.Context) (int, error)
}

// HolidayStore owns the organization-wide holiday calendar. Dates are unique
// forever.
type HolidayStore interface {
	Add(ctx context.Context, h Holiday) (Holiday, error)
	// List returns every holiday in the order added. O(n) scan by design.
	List(ctx context.Context) ([]Holiday, error)
}

// AttendanceStore owns per-principal presence marks, at most one per day.
type AttendanceStore interface {
	Mark(ctx context.Context, a Attendance) error
	// ListRange returns the employee's marks with from <= date <= to, in
	// marking order.
	ListRange(ctx context.Context, employee id.Principal, from, to time.Time) ([]Attendance, error)
}
