package notice

import (
	"context"
	"log/slog"
	"strconv"

	"orgnet/internal/events"
	"orgnet/internal/platform/metrics"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/requestcontext"
)

// Service posts and serves notices. Any caller may post; the caller becomes
// the sender. There is no update path: a notice, once posted, stands.
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

// Create posts a notice to an audience category.
func (s *Service) Create(ctx context.Context, category Category, description string, priority Priority, content string, sender id.Principal) (Notice, error) {
	if sender.IsZero() {
		return Notice{}, dErrors.New(dErrors.CodeBadRequest, "caller principal required")
	}
	if !validCategories[category] {
		return Notice{}, dErrors.Newf(dErrors.CodeValidation, "unknown notice category %q", category)
	}
	if !priority.IsValid() {
		return Notice{}, dErrors.New(dErrors.CodeValidation, "priority must be between 0 and 3")
	}
	if description == "" {
		return Notice{}, dErrors.New(dErrors.CodeValidation, "description cannot be empty")
	}
	if content == "" {
		return Notice{}, dErrors.New(dErrors.CodeValidation, "content cannot be empty")
	}

	n, err := s.store.Create(ctx, Notice{
		Category:    category,
		Description: description,
		Priority:    priority,
		Content:     content,
		Sender:      sender,
		CreatedAt:   requestcontext.Now(ctx),
	})
	if err != nil {
		return Notice{}, err
	}

	if _, err := s.events.Emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionNoticeCreated,
		RecordID:  n.ID,
		Principal: sender,
		Fields: map[string]string{
			"category": string(n.Category),
			"priority": strconv.Itoa(int(n.Priority)),
		},
	}); err != nil {
		return Notice{}, dErrors.Wrap(dErrors.CodeInternal, "event trail append failed", err)
	}
	if s.metrics != nil {
		s.metrics.IncRecordCreated(Registry)
		s.metrics.IncEventEmitted()
	}
	return n, nil
}

// Get returns one notice by id.
func (s *Service) Get(ctx context.Context, noticeID uint64) (Notice, error) {
	return s.store.Get(ctx, noticeID)
}

// ListByCategory returns every notice posted to the category, oldest first.
func (s *Service) ListByCategory(ctx context.Context, category Category) ([]Notice, error) {
	if !validCategories[category] {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown notice category %q", category)
	}
	return s.store.ListByCategory(ctx, category)
}

// Count returns the number of notices ever posted.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
