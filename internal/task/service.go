package task

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

// Service owns task mutations. Any caller may create a task (becoming its
// assigner); only the assigner or assignee may move its status.
type Service struct {
	store   Store
	events  *events.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, publisher *events.Publisher, opts ...Option) *Service {
	s := &Service{store: store, events: publisher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a task assigned by the caller to assignee.
func (s *Service) Create(ctx context.Context, description string, deadline time.Time, assignee id.Principal, assigner id.Principal) (Task, error) {
	if assigner.IsZero() {
		return Task{}, dErrors.New(dErrors.CodeBadRequest, "caller principal required")
	}
	if description == "" {
		return Task{}, dErrors.New(dErrors.CodeValidation, "description cannot be empty")
	}
	if assignee.IsZero() {
		return Task{}, dErrors.New(dErrors.CodeValidation, "assignee cannot be empty")
	}
	now := requestcontext.Now(ctx)
	if !deadline.After(now) {
		return Task{}, dErrors.New(dErrors.CodeValidation, "deadline must be in the future")
	}

	t, err := s.store.Create(ctx, Task{
		Description: description,
		Deadline:    deadline,
		Assigner:    assigner,
		Assignee:    assignee,
		Status:      StatusPending,
		CreatedAt:   now,
	})
	if err != nil {
		return Task{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionTaskCreated,
		RecordID:  t.ID,
		Principal: assigner,
		Recipient: assignee,
		Fields: map[string]string{
			"description": t.Description,
			"deadline":    t.Deadline.UTC().Format(time.RFC3339),
		},
	}); err != nil {
		return Task{}, err
	}
	if s.metrics != nil {
		s.metrics.IncRecordCreated(Registry)
	}
	return t, nil
}

// UpdateStatus moves a task to next. Assigner or assignee only; any valid
// target status is accepted.
func (s *Service) UpdateStatus(ctx context.Context, taskID uint64, next Status, caller id.Principal) (Task, error) {
	t, err := s.store.Get(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	if caller != t.Assigner && caller != t.Assignee {
		return Task{}, dErrors.New(dErrors.CodeUnauthorized, "only the assigner or assignee may update a task")
	}

	t, err = s.store.UpdateStatus(ctx, taskID, next)
	if err != nil {
		return Task{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionTaskStatusUpdated,
		RecordID:  t.ID,
		Principal: caller,
		Fields:    map[string]string{"status": string(t.Status)},
	}); err != nil {
		return Task{}, err
	}
	if s.metrics != nil {
		s.metrics.IncTransitionApplied(Registry)
	}
	return t, nil
}

// Get returns one task by id.
func (s *Service) Get(ctx context.Context, taskID uint64) (Task, error) {
	return s.store.Get(ctx, taskID)
}

// ListByPrincipal returns tasks the caller assigned or was assigned, in
// creation order.
func (s *Service) ListByPrincipal(ctx context.Context, p id.Principal) ([]Task, error) {
	return s.store.ListByPrincipal(ctx, p)
}

// Count returns the number of tasks ever created.
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
