package leave

import (
	"context"
	"log/slog"
	"time"

	"orgnet/internal/events"
	"orgnet/internal/platform/metrics"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/requestcontext"
)

// Service owns leave, holiday, and attendance mutations. Any caller may
// request leave for themselves; only principals holding the approver role
// decide requests or add holidays.
type Service struct {
	store      Store
	holidays   HolidayStore
	attendance AttendanceStore
	events     *events.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, holidays HolidayStore, attendance AttendanceStore, publisher *events.Publisher, opts ...Option) *Service {
	s := &Service{store: store, holidays: holidays, attendance: attendance, events: publisher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request files a leave request for the caller.
func (s *Service) Request(ctx context.Context, startDate, endDate time.Time, leaveType, reason string, employee id.Principal) (Leave, error) {
	if employee.IsZero() {
		return Leave{}, dErrors.New(dErrors.CodeBadRequest, "caller principal required")
	}
	if leaveType == "" {
		return Leave{}, dErrors.New(dErrors.CodeValidation, "leave type cannot be empty")
	}
	if reason == "" {
		return Leave{}, dErrors.New(dErrors.CodeValidation, "reason cannot be empty")
	}
	if !startDate.Before(endDate) {
		return Leave{}, dErrors.New(dErrors.CodeValidation, "start date must be before end date")
	}
	now := requestcontext.Now(ctx)
	if !startDate.After(now) {
		return Leave{}, dErrors.New(dErrors.CodeValidation, "start date must be in the future")
	}

	l, err := s.store.Create(ctx, Leave{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      leaveType,
		Reason:    reason,
		Employee:  employee,
		Status:    StatusPending,
		CreatedAt: now,
	})
	if err != nil {
		return Leave{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionLeaveRequested,
		RecordID:  l.ID,
		Principal: employee,
		Fields: map[string]string{
			"start_date": DayKey(l.StartDate),
			"end_date":   DayKey(l.EndDate),
			"type":       l.Type,
		},
	}); err != nil {
		return Leave{}, err
	}
	if s.metrics != nil {
		s.metrics.IncRecordCreated(Registry)
	}
	return l, nil
}

// UpdateStatus approves or rejects a pending request. Approver role only;
// both outcomes are terminal.
func (s *Service) UpdateStatus(ctx context.Context, leaveID uint64, next Status, caller id.Principal, roles id.Roles) (Leave, error) {
	if _, err := s.store.Get(ctx, leaveID); err != nil {
		return Leave{}, err
	}
	if !roles.Has(id.RoleApprover) {
		return Leave{}, dErrors.New(dErrors.CodeUnauthorized, "only approvers may decide leave requests")
	}

	l, err := s.store.UpdateStatus(ctx, leaveID, next)
	if err != nil {
		return Leave{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionLeaveStatusUpdated,
		RecordID:  l.ID,
		Principal: caller,
		Recipient: l.Employee,
		Fields:    map[string]string{"status": string(l.Status)},
	}); err != nil {
		return Leave{}, err
	}
	if s.metrics != nil {
		s.metrics.IncTransitionApplied(Registry)
	}
	return l, nil
}

// Get returns one leave request by id.
func (s *Service) Get(ctx context.Context, leaveID uint64) (Leave, error) {
	return s.store.Get(ctx, leaveID)
}

// ListByEmployee returns the caller's requests in filing order.
func (s *Service) ListByEmployee(ctx context.Context, employee id.Principal) ([]Leave, error) {
	return s.store.ListByEmployee(ctx, employee)
}

// ListPending returns every undecided request, ascending id. O(n) scan over
// the allocated range; inclusion is evaluated at call time.
func (s *Service) ListPending(ctx context.Context) ([]Leave, error) {
	return s.store.ListPending(ctx)
}

// Count returns the number of leave requests ever filed.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// AddHoliday registers an organization-wide holiday. Approver role only; at
// most one holiday per calendar day, forever.
func (s *Service) AddHoliday(ctx context.Context, date time.Time, description string, caller id.Principal, roles id.Roles) (Holiday, error) {
	if !roles.Has(id.RoleApprover) {
		return Holiday{}, dErrors.New(dErrors.CodeUnauthorized, "only approvers may add holidays")
	}
	if description == "" {
		return Holiday{}, dErrors.New(dErrors.CodeValidation, "holiday description cannot be empty")
	}

	h, err := s.holidays.Add(ctx, Holiday{
		Date:        date,
		Description: description,
		AddedBy:     caller,
		CreatedAt:   requestcontext.Now(ctx),
	})
	if err != nil {
		return Holiday{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionHolidayAdded,
		RecordID:  h.ID,
		Principal: caller,
		Fields: map[string]string{
			"date":        DayKey(h.Date),
			"description": h.Description,
		},
	}); err != nil {
		return Holiday{}, err
	}
	return h, nil
}

// ListHolidays returns the full calendar in the order added.
func (s *Service) ListHolidays(ctx context.Context) ([]Holiday, error) {
	return s.holidays.List(ctx)
}

// MarkAttendance records the caller present on date. At most one mark per
// caller per day.
func (s *Service) MarkAttendance(ctx context.Context, date time.Time, caller id.Principal) (Attendance, error) {
	if caller.IsZero() {
		return Attendance{}, dErrors.New(dErrors.CodeBadRequest, "caller principal required")
	}

	a := Attendance{
		Employee: caller,
		Date:     date,
		MarkedAt: requestcontext.Now(ctx),
	}
	if err := s.attendance.Mark(ctx, a); err != nil {
		return Attendance{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionAttendanceMarked,
		Principal: caller,
		Fields:    map[string]string{"date": DayKey(a.Date)},
	}); err != nil {
		return Attendance{}, err
	}
	return a, nil
}

// ListAttendance returns the caller's presence marks within the inclusive
// date range.
func (s *Service) ListAttendance(ctx context.Context, employee id.Principal, from, to time.Time) ([]Attendance, error) {
	return s.attendance.ListRange(ctx, employee, from, to)
}

func (s *Service) emit(ctx context.Context, event events.Event) error {
	if _, err := s.events.Emit(ctx, event); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "event trail append failed", err)
	}
	if s.metrics != nil {
		s.metrics.IncEventEmitted()
	}
	return nil
}
