package certificate

import (
	"context"
	"log/slog"

	"orgnet/internal/certificate/cache"
	"orgnet/internal/events"
	"orgnet/internal/platform/metrics"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/requestcontext"
)

// Service owns certificate mutations: authorization, transition checks, the
// store commit, and the event trail entry, in that order. Reads go straight
// to the store.
type Service struct {
	store   Store
	events  *events.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	cache   cache.VerificationCache
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for operational reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithVerificationCache enables the read-through cache on VerifyByHash.
func WithVerificationCache(c cache.VerificationCache) Option {
	return func(s *Service) { s.cache = c }
}

func NewService(store Store, publisher *events.Publisher, opts ...Option) *Service {
	s := &Service{store: store, events: publisher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a certificate owned by issuer. Any caller may issue; the
// content hash must be globally unused.
func (s *Service) Issue(ctx context.Context, name, contentHash string, issuer id.Principal) (Certificate, error) {
	if issuer.IsZero() {
		return Certificate{}, dErrors.New(dErrors.CodeBadRequest, "caller principal required")
	}
	if name == "" {
		return Certificate{}, dErrors.New(dErrors.CodeValidation, "certificate name cannot be empty")
	}
	if contentHash == "" {
		return Certificate{}, dErrors.New(dErrors.CodeValidation, "content hash cannot be empty")
	}

	cert, err := s.store.Create(ctx, Certificate{
		Name:        name,
		ContentHash: contentHash,
		Issuer:      issuer,
		Status:      StatusValid,
		CreatedAt:   requestcontext.Now(ctx),
	})
	if err != nil {
		return Certificate{}, err
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionCertificateIssued,
		RecordID:  cert.ID,
		Principal: issuer,
		Fields: map[string]string{
			"name":         cert.Name,
			"content_hash": cert.ContentHash,
		},
	}); err != nil {
		return Certificate{}, err
	}
	if s.metrics != nil {
		s.metrics.IncRecordCreated(Registry)
	}
	return cert, nil
}

// Revoke marks a certificate invalid. Issuer only; revocation is terminal and
// re-revoking fails rather than being silently ignored.
func (s *Service) Revoke(ctx context.Context, certID uint64, caller id.Principal) (Certificate, error) {
	cert, err := s.store.Get(ctx, certID)
	if err != nil {
		return Certificate{}, err
	}
	if cert.Issuer != caller {
		return Certificate{}, dErrors.New(dErrors.CodeUnauthorized, "only the issuer may revoke a certificate")
	}

	cert, err = s.store.UpdateStatus(ctx, certID, StatusRevoked)
	if err != nil {
		return Certificate{}, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cert.ContentHash); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "verification cache invalidate failed",
				"certificate_id", certID,
				"error", err,
			)
		}
	}

	if err := s.emit(ctx, events.Event{
		Registry:  Registry,
		Action:    events.ActionCertificateRevoked,
		RecordID:  cert.ID,
		Principal: caller,
		Fields:    map[string]string{"status": string(cert.Status)},
	}); err != nil {
		return Certificate{}, err
	}
	if s.metrics != nil {
		s.metrics.IncTransitionApplied(Registry)
	}
	return cert, nil
}

// Get returns one certificate by id.
func (s *Service) Get(ctx context.Context, certID uint64) (Certificate, error) {
	return s.store.Get(ctx, certID)
}

// VerifyByHash reports whether a certificate with the given content hash
// exists and is still valid. Unknown hashes verify as false, not as an error.
func (s *Service) VerifyByHash(ctx context.Context, contentHash string) (bool, error) {
	if s.cache != nil {
		if valid, ok, err := s.cache.Get(ctx, contentHash); err == nil && ok {
			return valid, nil
		} else if err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "verification cache read failed", "error", err)
		}
	}

	cert, err := s.store.GetByHash(ctx, contentHash)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}

	valid := cert.Status == StatusValid
	if s.cache != nil {
		if err := s.cache.Set(ctx, contentHash, valid); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "verification cache write failed", "error", err)
		}
	}
	return valid, nil
}

// ListByIssuer returns the caller's certificates in issuance order.
func (s *Service) ListByIssuer(ctx context.Context, issuer id.Principal) ([]Certificate, error) {
	return s.store.ListByIssuer(ctx, issuer)
}

// Count returns the number of certificates ever issued.
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
