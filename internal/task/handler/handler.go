package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"orgnet/internal/platform/middleware"
	"orgnet/internal/task"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/platform/httputil"
	"orgnet/pkg/requestcontext"
)

// Service is the task surface the handler drives.
type Service interface {
	Create(ctx context.Context, description string, deadline time.Time, assignee, assigner id.Principal) (task.Task, error)
	UpdateStatus(ctx context.Context, taskID uint64, next task.Status, caller id.Principal) (task.Task, error)
	Get(ctx context.Context, taskID uint64) (task.Task, error)
	ListByPrincipal(ctx context.Context, p id.Principal) ([]task.Task, error)
	Count(ctx context.Context) (int, error)
}

// Handler serves the task endpoints.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(service Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{service: service, logger: logger, validator: validator}
}

// Register mounts the task routes. Reads by id are public; everything else
// requires a bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tasks", h.handleCount)
	r.Get("/tasks/{id}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/tasks", h.handleCreate)
		r.Post("/tasks/{id}/status", h.handleUpdateStatus)
		r.Get("/me/tasks", h.handleMine)
	})
}

type createRequest struct {
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Assignee    string    `json:"assignee"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type taskResponse struct {
	ID          uint64    `json:"id"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Assigner    string    `json:"assigner"`
	Assignee    string    `json:"assignee"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Description: t.Description,
		Deadline:    t.Deadline,
		Assigner:    t.Assigner.String(),
		Assignee:    t.Assignee.String(),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	assignee, err := id.ParsePrincipal(req.Assignee)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.service.Create(ctx, req.Description, req.Deadline, assignee, requestcontext.Principal(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "task create rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	next, err := task.ParseStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.service.UpdateStatus(ctx, taskID, next, requestcontext.Principal(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "task status update rejected",
			"task_id", taskID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	taskID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.service.Get(r.Context(), taskID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tasks, err := h.service.ListByPrincipal(ctx, requestcontext.Principal(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t))
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
