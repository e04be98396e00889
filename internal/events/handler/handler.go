package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"orgnet/internal/events"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/platform/httputil"
)

const defaultLimit = 100

// Handler serves the event trail read endpoint.
type Handler struct {
	publisher *events.Publisher
	logger    *slog.Logger
}

func New(publisher *events.Publisher, logger *slog.Logger) *Handler {
	return &Handler{publisher: publisher, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/events", h.handleList)
}

type eventResponse struct {
	Seq       uint64            `json:"seq"`
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Registry  string            `json:"registry"`
	Action    string            `json:"action"`
	RecordID  uint64            `json:"record_id,omitempty"`
	Principal string            `json:"principal"`
	Recipient string            `json:"recipient,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// handleList streams the trail after a cursor: GET /events?after=N&limit=M.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var after uint64
	if raw := q.Get("after"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid after cursor %q", raw))
			return
		}
		after = parsed
	}

	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	trail, err := h.publisher.List(r.Context(), after, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]eventResponse, 0, len(trail))
	for _, e := range trail {
		out = append(out, eventResponse{
			Seq:       e.Seq,
			ID:        e.ID.String(),
			Timestamp: e.Timestamp,
			Registry:  e.Registry,
			Action:    string(e.Action),
			RecordID:  e.RecordID,
			Principal: e.Principal.String(),
			Recipient: e.Recipient.String(),
			Fields:    e.Fields,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
