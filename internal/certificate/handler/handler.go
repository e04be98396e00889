package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"orgnet/internal/certificate"
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/platform/httputil"
	"orgnet/pkg/requestcontext"
)

// Service is the certificate surface the handler drives.
type Service interface {
	Issue(ctx context.Context, name, contentHash string, issuer id.Principal) (certificate.Certificate, error)
	Revoke(ctx context.Context, certID uint64, caller id.Principal) (certificate.Certificate, error)
	Get(ctx context.Context, certID uint64) (certificate.Certificate, error)
	VerifyByHash(ctx context.Context, contentHash string) (bool, error)
	ListByIssuer(ctx context.Context, issuer id.Principal) ([]certificate.Certificate, error)
	Count(ctx context.Context) (int, error)
}

// Handler serves the certificate endpoints.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(service Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{service: service, logger: logger, validator: validator}
}

// Register mounts the certificate routes. Verification and single-record
// reads are public; issuing, revoking, and "my certificates" require a
// bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/certificates", h.handleCount)
	r.Get("/certificates/{id}", h.handleGet)
	r.Get("/certificates/verify/{hash}", h.handleVerify)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/certificates", h.handleIssue)
		r.Post("/certificates/{id}/revoke", h.handleRevoke)
		r.Get("/me/certificates", h.handleMine)
	})
}

type issueRequest struct {
	Name        string `json:"name"`
	ContentHash string `json:"content_hash"`
}

type certificateResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	ContentHash string    `json:"content_hash"`
	Issuer      string    `json:"issuer"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(c certificate.Certificate) certificateResponse {
	return certificateResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContentHash: c.ContentHash,
		Issuer:      c.Issuer.String(),
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	cert, err := h.service.Issue(ctx, req.Name, req.ContentHash, requestcontext.Principal(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "certificate issue rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(cert))
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cert, err := h.service.Revoke(ctx, certID, requestcontext.Principal(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "certificate revoke rejected",
			"certificate_id", certID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(cert))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	certID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cert, err := h.service.Get(r.Context(), certID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(cert))
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	valid, err := h.service.VerifyByHash(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certs, err := h.service.ListByIssuer(ctx, requestcontext.Principal(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]certificateResponse, 0, len(certs))
	for _, c := range certs {
		out = append(out, toResponse(c))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Count(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"count": n})
}

func recordID(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "id")
	recordID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || recordID == 0 {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid record id %q", raw)
	}
	return recordID, nil
}
