// Package httpapi assembles the HTTP surface. It composes the per-registry
// handlers onto one chi router behind the shared middleware chain; transport
// concerns stay here so the registries never see net/http.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orgnet/internal/platform/middleware"
	"orgnet/pkg/platform/httputil"
)

// Registrar mounts one feature's routes onto the shared router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter builds the full route tree. Every request passes Recovery,
// RequestID, RequestTime, and Logger; auth is applied per route group by the
// handlers themselves.
func NewRouter(logger *slog.Logger, features ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))

	for _, f := range features {
		f.Register(r)
	}

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
