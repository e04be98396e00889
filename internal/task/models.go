package task

import (
	"time"

	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// Registry is the name this registry reports in events and metrics.
const Registry = "task"

// Status is the task state. The transition graph is deliberately
// unrestricted: a completed task can be reopened and a cancelled one revived,
// reflecting real-world correction needs. Authorization, not the state
// machine, is the guard here.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// ParseStatus constructs a Status from external input.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown task status %q", s)
	}
	return status, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// Task is one tracked work item. The creator becomes the assigner; assigner
// and assignee are the only principals allowed to move its status.
type Task struct {
	ID          uint64
	Description string
	Deadline    time.Time
	Assigner    id.Principal
	Assignee    id.Principal
	Status      Status
	CreatedAt   time.Time
}
