package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taxnation/crm-backend/internal/config"
	"github.com/taxnation/crm-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Bookings  *RecordHandler
	Leads     *RecordHandler
	Invoices  *RecordHandler
	Employees *EmployeeHandler
	Payments  *PaymentHandler
	Health    *HealthHandler
}

// NewRouter builds the full HTTP routing tree. The auth middleware resolves
// the caller identity for every API request; authorization itself happens in
// the services.
func NewRouter(cfg config.Config, h Handlers, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(reg)

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Handler())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitCSV(cfg.CORS.AllowedOrigins),
		AllowedMethods:   splitCSV(cfg.CORS.AllowedMethods),
		AllowedHeaders:   splitCSV(cfg.CORS.AllowedHeaders),
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimit, cfg.Server.RateWindow))

	// Probes and metrics stay outside the auth middleware.
	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Get("/live", h.Health.Live)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(h.Auth.svc))

		r.Route("/auth", h.Auth.Routes)
		r.Route("/users", h.Users.Routes)
		r.Route("/bookings", h.Bookings.Routes)
		r.Route("/leads", h.Leads.Routes)
		r.Route("/invoices", h.Invoices.Routes)
		r.Route("/employees", h.Employees.Routes)
		r.Route("/payments", h.Payments.Routes)
	})

	return r
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
