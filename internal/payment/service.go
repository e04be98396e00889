package payment

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"orgnet/internal/events"
	"orgnet/internal/platform/metrics"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/requestcontext"
)

// Service owns payment mutations. Both filing and processing require the
// approver role. Processing is serialized behind a service mutex so the
// treasury transfer and the status flip commit as one step.
type Service struct {
	store    Store
	treasury Treasury
	events   *events.Publisher
	logger   *slog.Logger
	metrics  *metrics.Metrics

	processMu sync.Mutex
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, treasury Treasury, publisher *events.Publisher, opts ...Option) *Service {
	s := &Service{store: store, treasury: treasury, events: publisher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create files a salary payment. Approver role only.
func (s *Service) Create(ctx context.Context, employeeName string, employee id.Principal, description string, amount uint64, caller id.Principal, roles id.Roles) (Payment, error) {
	if !roles.Has(id.RoleApprover) {
		return Payment{}, dErrors.New(dErrors.CodeUnauthorized, "only approvers may file payments")
	}
	if employeeName == "" {
		return Payment{}, dErrors.New(dErrors.CodeValidation, "employee name cannot be empty")
	}
	if employee.IsZero() {
		return Payment{}, dErrors.New(dErrors.CodeValidation, "employee address cannot be empty")
	}
	if description == "" {
		return Payment{}, dErrors.New(dErrors.CodeValidation, "description cannot be empty")
	}
	if amount == 0 {
		return Payment{}, dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}

	p, err := s.store.Create(ctx, Payment{
		EmployeeName: employeeName,
		Employee:     employee,
		Description:  description,
		Amount:       amount,
		Status:       StatusUnpaid,
		CreatedBy:    caller,
		CreatedAt:    requestcontext.Now(ctx),
	})
	if err != nil {
		return Payment{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionPaymentCreated,
		RecordID:  p.ID,
		Principal: caller,
		Recipient: p.Employee,
		Fields: map[string]string{
			"employee_name": p.EmployeeName,
			"amount":        strconv.FormatUint(p.Amount, 10),
		},
	}); err != nil {
		return Payment{}, err
	}
	if s.metrics != nil {
		s.metrics.IncRecordCreated(Registry)
	}
	return p, nil
}

// Process pays out an unpaid payment. Approver role only. The attached value
// must cover the amount; on any failure the payment stays unpaid.
func (s *Service) Process(ctx context.Context, paymentID uint64, attached uint64, caller id.Principal, roles id.Roles) (Payment, error) {
	if !roles.Has(id.RoleApprover) {
		return Payment{}, dErrors.New(dErrors.CodeUnauthorized, "only approvers may process payments")
	}

	s.processMu.Lock()
	defer s.processMu.Unlock()

	p, err := s.store.Get(ctx, paymentID)
	if err != nil {
		return Payment{}, err
	}
	if !p.Status.CanTransitionTo(StatusPaid) {
		return Payment{}, dErrors.Newf(dErrors.CodeInvalidTransition, "payment %d already %s", paymentID, p.Status)
	}

	// Transfer first: if the treasury refuses, the record never mutates.
	if err := s.treasury.Transfer(ctx, caller, p.Employee, p.Amount, attached); err != nil {
		return Payment{}, err
	}

	p, err = s.store.MarkPaid(ctx, paymentID)
	if err != nil {
		return Payment{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionPaymentProcessed,
		RecordID:  p.ID,
		Principal: caller,
		Recipient: p.Employee,
		Fields:    map[string]string{"amount": strconv.FormatUint(p.Amount, 10)},
	}); err != nil {
		return Payment{}, err
	}
	if s.metrics != nil {
		s.metrics.IncTransitionApplied(Registry)
	}
	return p, nil
}

// Get returns one payment by id.
func (s *Service) Get(ctx context.Context, paymentID uint64) (Payment, error) {
	return s.store.Get(ctx, paymentID)
}

// ListByRecipient returns the payments destined for the principal, oldest
// first.
func (s *Service) ListByRecipient(ctx context.Context, recipient id.Principal) ([]Payment, error) {
	return s.store.ListByRecipient(ctx, recipient)
}

// Count returns the number of payments ever filed.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
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
