package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"orgnet/internal/notice"
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/platform/httputil"
	"orgnet/pkg/requestcontext"
)

// Service is the notice surface the handler drives.
type Service interface {
	Create(ctx context.Context, category notice.Category, description string, priority notice.Priority, content string, sender id.Principal) (notice.Notice, error)
	Get(ctx context.Context, noticeID uint64) (notice.Notice, error)
	ListByCategory(ctx context.Context, category notice.Category) ([]notice.Notice, error)
	Count(ctx context.Context) (int, error)
}

// Handler serves the notice endpoints.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(service Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{service: service, logger: logger, validator: validator}
}

// Register mounts the notice routes. Reads are public; posting requires a
// bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notices", h.handleCount)
	r.Get("/notices/{id}", h.handleGet)
	r.Get("/notices/category/{category}", h.handleListByCategory)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/notices", h.handleCreate)
	})
}

type createRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    uint8  `json:"priority"`
	Content     string `json:"content"`
}

type noticeResponse struct {
	ID            uint64    `json:"id"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Priority      uint8     `json:"priority"`
	PriorityLabel string    `json:"priority_label"`
	Content       string    `json:"content"`
	Sender        string    `json:"sender"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(n notice.Notice) noticeResponse {
	return noticeResponse{
		ID:            n.ID,
		Category:      string(n.Category),
		Description:   n.Description,
		Priority:      uint8(n.Priority),
		PriorityLabel: n.Priority.String(),
		Content:       n.Content,
		Sender:        n.Sender.String(),
		CreatedAt:     n.CreatedAt,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	category, err := notice.ParseCategory(req.Category)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	n, err := h.service.Create(ctx, category, req.Description, notice.Priority(req.Priority), req.Content, requestcontext.Principal(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "notice create rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(n))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	noticeID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || noticeID == 0 {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid record id %q", raw))
		return
	}

	n, err := h.service.Get(r.Context(), noticeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(n))
}

func (h *Handler) handleListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := notice.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	notices, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]noticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, toResponse(n))
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
