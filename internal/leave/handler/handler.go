package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"orgnet/internal/leave"
	"orgnet/internal/platform/middleware"
	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/platform/httputil"
	"orgnet/pkg/requestcontext"
)

// Service is the leave surface the handler drives.
type Service interface {
	Request(ctx context.Context, startDate, endDate time.Time, leaveType, reason string, employee id.Principal) (leave.Leave, error)
	UpdateStatus(ctx context.Context, leaveID uint64, next leave.Status, caller id.Principal, roles id.Roles) (leave.Leave, error)
	Get(ctx context.Context, leaveID uint64) (leave.Leave, error)
	ListByEmployee(ctx context.Context, employee id.Principal) ([]leave.Leave, error)
	ListPending(ctx context.Context) ([]leave.Leave, error)
	AddHoliday(ctx context.Context, date time.Time, description string, caller id.Principal, roles id.Roles) (leave.Holiday, error)
	ListHolidays(ctx context.Context) ([]leave.Holiday, error)
	MarkAttendance(ctx context.Context, date time.Time, caller id.Principal) (leave.Attendance, error)
	ListAttendance(ctx context.Context, employee id.Principal, from, to time.Time) ([]leave.Attendance, error)
}

// Handler serves the leave, holiday, and attendance endpoints.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.TokenValidator
}

func New(service Service, logger *slog.Logger, validator middleware.TokenValidator) *Handler {
	return &Handler{service: service, logger: logger, validator: validator}
}

// Register mounts the leave routes. The holiday calendar and single-record
// reads are public; filing, deciding, and the personal listings require a
// bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/leaves/pending", h.handleListPending)
	r.Get("/leaves/{id}", h.handleGet)
	r.Get("/holidays", h.handleListHolidays)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/leaves", h.handleRequest)
		r.Post("/leaves/{id}/status", h.handleUpdateStatus)
		r.Get("/me/leaves", h.handleMine)
		r.Post("/holidays", h.handleAddHoliday)
		r.Post("/attendance", h.handleMarkAttendance)
		r.Get("/me/attendance", h.handleMyAttendance)
	})
}

type requestLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type holidayRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

type attendanceRequest struct {
	Date string `json:"date"`
}

type leaveResponse struct {
	ID        uint64    `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	Employee  string    `json:"employee"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type holidayResponse struct {
	ID          uint64 `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	AddedBy     string `json:"added_by"`
}

type attendanceResponse struct {
	Employee string    `json:"employee"`
	Date     string    `json:"date"`
	MarkedAt time.Time `json:"marked_at"`
}

func toLeaveResponse(l leave.Leave) leaveResponse {
	return leaveResponse{
		ID:        l.ID,
		StartDate: leave.DayKey(l.StartDate),
		EndDate:   leave.DayKey(l.EndDate),
		Type:      l.Type,
		Reason:    l.Reason,
		Employee:  l.Employee.String(),
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
	}
}

func toLeaveResponses(leaves []leave.Leave) []leaveResponse {
	out := make([]leaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, toLeaveResponse(l))
	}
	return out
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	l, err := h.service.Request(ctx, startDate, endDate, req.Type, req.Reason, requestcontext.Principal(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "leave request rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toLeaveResponse(l))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leaveID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	next, err := leave.ParseStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	l, err := h.service.UpdateStatus(ctx, leaveID, next, requestcontext.Principal(ctx), requestcontext.Roles(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "leave decision rejected",
			"leave_id", leaveID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaveResponse(l))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	leaveID, err := recordID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	l, err := h.service.Get(r.Context(), leaveID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaveResponse(l))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leaves, err := h.service.ListByEmployee(ctx, requestcontext.Principal(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaveResponses(leaves))
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.service.ListPending(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLeaveResponses(leaves))
}

func (h *Handler) handleAddHoliday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	holiday, err := h.service.AddHoliday(ctx, date, req.Description, requestcontext.Principal(ctx), requestcontext.Roles(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "holiday add rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, holidayResponse{
		ID:          holiday.ID,
		Date:        leave.DayKey(holiday.Date),
		Description: holiday.Description,
		AddedBy:     holiday.AddedBy.String(),
	})
}

func (h *Handler) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.service.ListHolidays(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]holidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		out = append(out, holidayResponse{
			ID:          holiday.ID,
			Date:        leave.DayKey(holiday.Date),
			Description: holiday.Description,
			AddedBy:     holiday.AddedBy.String(),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	mark, err := h.service.MarkAttendance(ctx, date, requestcontext.Principal(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, attendanceResponse{
		Employee: mark.Employee.String(),
		Date:     leave.DayKey(mark.Date),
		MarkedAt: mark.MarkedAt,
	})
}

func (h *Handler) handleMyAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	marks, err := h.service.ListAttendance(ctx, requestcontext.Principal(ctx), from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]attendanceResponse, 0, len(marks))
	for _, mark := range marks {
		out = append(out, attendanceResponse{
			Employee: mark.Employee.String(),
			Date:     leave.DayKey(mark.Date),
			MarkedAt: mark.MarkedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(leave.DateLayout, s)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeBadRequest, "invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func recordID(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "id")
	recordID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || recordID == 0 {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid record id %q", raw)
	}
	return recordID, nil
}
