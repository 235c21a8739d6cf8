package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cna/internal/platform/middleware"
	"cna/internal/workforce/handler"
)

// RouterConfig carries the cross-cutting dependencies the router needs.
type RouterConfig struct {
	AdminToken string
	Logger     *slog.Logger
	Audit      middleware.Emitter
}

// NewRouter wires all endpoints. Read endpoints are open; mutating endpoints
// sit behind the admin token.
func NewRouter(workforce *handler.Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		admin := api.With(middleware.RequireAdminToken(cfg.AdminToken, cfg.Logger, cfg.Audit))
		workforce.Register(api, admin)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
