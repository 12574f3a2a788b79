package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"oasis-blood-platform/internal/http/handlers"
	mw "oasis-blood-platform/internal/http/middleware"
	"oasis-blood-platform/internal/logx"
)

const requestTimeout = 5 * time.Second

// Options configures cross-cutting middleware.
type Options struct {
	Logger         logx.Logger
	RateLimit      func(http.Handler) http.Handler
	AllowedOrigins []string
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(opts Options, h *handlers.Handlers, donors *handlers.DonorHandler, requests *handlers.RequestHandler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logx.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodHead},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         300,
	}).Handler)

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}
		r.Use(middleware.Timeout(requestTimeout))

		r.Post("/donors", donors.Create)
		r.Get("/donors/{id}", donors.Get)
		r.Patch("/donors/{id}", donors.Update)

		r.Post("/users/{id}/devices", donors.RegisterDevice)
		r.Delete("/users/{id}/devices/{token}", donors.RemoveDevice)

		r.Post("/requests", requests.Create)
		r.Get("/requests/{id}", requests.Get)
		r.Post("/requests/{id}/close", requests.Close)
		r.Post("/requests/{id}/fulfill", requests.Fulfill)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
