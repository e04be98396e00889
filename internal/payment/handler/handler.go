package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"orgnet/internal/payment"
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/platform/httputil"
	"orgnet/pkg/requestcontext"
)

// Service is the payment surface the handler drives.
type Service interface {
	Create(ctx context.Context, employeeName string, employee id.Principal, description string, amount uint64, caller id.Principal, roles id.Roles) (payment.Payment, error)
	Process(ctx context.Context, paymentID uint64, attached uint64, caller id.Principal, roles id.Roles) (payment.Payment, error)
	Get(ctx context.Context, paymentID uint64) (payment.Payment, error)
	ListByRecipient(ctx context.Context, recipient id.Principal) ([]payment.Payment, error)
	Count(ctx context.Context) (int, error)
}

// Handler serves the payment endpoints. Every route requires a bearer token:
// payment records carry salary data and are not public reads.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(service Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{service: service, logger: logger, validator: validator}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/payments", h.handleCreate)
		r.Post("/payments/{id}/process", h.handleProcess)
		r.Get("/payments", h.handleCount)
		r.Get("/payments/{id}", h.handleGet)
		r.Get("/me/payments", h.handleMine)
	})
}

type createRequest struct {
	EmployeeName    string `json:"employee_name"`
	EmployeeAddress string `json:"employee_address"`
	Description     string `json:"description"`
	Amount          uint64 `json:"amount"`
}

type processRequest struct {
	AttachedValue uint64 `json:"attached_value"`
}

type paymentResponse struct {
	ID           uint64    `json:"id"`
	EmployeeName string    `json:"employee_name"`
	Employee     string    `json:"employee_address"`
	Description  string    `json:"description"`
	Amount       uint64    `json:"amount"`
	Status       string    `json:"status"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(p payment.Payment) paymentResponse {
	return paymentResponse{
		ID:           p.ID,
		EmployeeName: p.EmployeeName,
		Employee:     p.Employee.String(),
		Description:  p.Description,
		Amount:       p.Amount,
		Status:       string(p.Status),
		CreatedBy:    p.CreatedBy.String(),
		CreatedAt:    p.CreatedAt,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.service.Create(ctx, req.EmployeeName, id.Principal(req.EmployeeAddress), req.Description, req.Amount,
		requestcontext.Principal(ctx), requestcontext.Roles(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "payment create rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paymentID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	p, err := h.service.Process(ctx, paymentID, req.AttachedValue,
		requestcontext.Principal(ctx), requestcontext.Roles(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "payment process rejected",
			"payment_id", paymentID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	paymentID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.Get(r.Context(), paymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payments, err := h.service.ListByRecipient(ctx, requestcontext.Principal(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toResponse(p))
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
