package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/obafemitayor/user-snack/pkg/health"
	"github.com/obafemitayor/user-snack/pkg/middleware"
)

// RouterConfig carries what the router needs beyond the handlers.
type RouterConfig struct {
	Logger         *slog.Logger
	Health         *health.Handler
	AllowedOrigins []string
	Environment    string
}

// NewRouter assembles the admin console router with the standard middleware
// stack.
func NewRouter(orders *OrdersHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("admin-console"))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	corsCfg.Environment = cfg.Environment
	r.Use(middleware.CORS(corsCfg))

	r.Get("/healthz", cfg.Health.LivenessHandler())
	r.Get("/readyz", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/orders", orders.List)
		r.Get("/orders/statuses", orders.ListStatuses)
		r.Get("/orders/{id}", orders.Get)
		r.Put("/orders/{id}/status", orders.UpdateStatus)
	})

	return r
}
