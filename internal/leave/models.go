package leave

import (
	"time"

	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// Registry is the name this registry reports in events and metrics.
const Registry = "leave"

// DateLayout is the canonical day format used for holiday and attendance
// natural keys.
const DateLayout = "2006-01-02"

// Status is the leave request state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus constructs a Status from external input. Only decision states
// parse; requests always start pending.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if status != StatusApproved && status != StatusRejected && status != StatusPending {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown leave status %q", s)
	}
	return status, nil
}

// CanTransitionTo reports whether the status change is permitted. Approval
// and rejection are both terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}

// Leave is one leave-of-absence request. The creator becomes the employee;
// only approvers decide it.
type Leave struct {
	ID        uint64
	StartDate time.Time
	EndDate   time.Time
	Type      string
	Reason    string
	Employee  id.Principal
	Status    Status
	CreatedAt time.Time
}

// Holiday is one organization-wide non-working day. The date is a natural
// key: at most one holiday per calendar day, forever.
type Holiday struct {
	ID          uint64
	Date        time.Time
	Description string
	AddedBy     id.Principal
	CreatedAt   time.Time
}

// Attendance is one presence mark. A principal can mark a given day at most
// once; marks are never removed.
type Attendance struct {
	Employee id.Principal
	Date     time.Time
	MarkedAt time.Time
}

// DayKey normalizes t to the natural-key form shared by holidays and
// attendance marks.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
