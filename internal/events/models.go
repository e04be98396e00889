package events

import (
	"time"

	"github.com/google/uuid"

	id "orgnet/pkg/domain"
)

// Action names the accepted mutation an event records.
type Action string

const (
	ActionCertificateIssued  Action = "certificate_issued"
	ActionCertificateRevoked Action = "certificate_revoked"
	ActionTaskCreated        Action = "task_created"
	ActionTaskStatusUpdated  Action = "task_status_updated"
	ActionLeaveRequested     Action = "leave_requested"
	ActionLeaveStatusUpdated Action = "leave_status_updated"
	ActionHolidayAdded       Action = "holiday_added"
	ActionAttendanceMarked   Action = "attendance_marked"
	ActionNoticeCreated      Action = "notice_created"
	ActionPaymentCreated     Action = "payment_created"
	ActionPaymentProcessed   Action = "payment_processed"
)

// Event is one immutable entry in the trail: exactly one per accepted
// mutation, ordered by commit sequence, never revised. The trail is a derived,
// replayable projection — record stores remain the source of truth.
type Event struct {
	// Seq is the commit order, assigned by the log on append. 1-based.
	Seq       uint64
	ID        uuid.UUID
	Timestamp time.Time
	Registry  string
	Action    Action
	RecordID  uint64
	// Principal is the caller that performed the mutation.
	Principal id.Principal
	// Recipient is the counterparty when the action has one (task assignee,
	// payment recipient); zero otherwise.
	Recipient id.Principal
	// Fields snapshots the mutated fields at commit time.
	Fields map[string]string
}
