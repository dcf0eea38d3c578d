package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"addy/internal/core/port"
)

// Options configures optional parts of the HTTP adapter.
type Options struct {
	// Metrics, when set, is served at GET /metrics.
	Metrics http.Handler
	// AllowedOrigins enables CORS for the listed origins. Empty disables it.
	AllowedOrigins []string
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the registry use case and a logger for structured logging. Routes
// are registered on a chi.Router.
type Handler struct {
	svc    port.RegistryUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.RegistryUseCase, logger *slog.Logger, opts Options) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Get("/{id}", h.handleGetCampaign)
			r.Post("/{id}/phase", h.handleTransitionPhase)
			r.Post("/{id}/slots", h.handleAllocateSlot)
			r.Get("/{id}/slots", h.handleListSlots)
		})
		r.Get("/slots/{id}", h.handleGetSlot)
		r.Delete("/slots/{id}", h.handleDeactivateSlot)
		r.Get("/zones/{zone}/throttle", h.handleZoneThrottle)
		r.Get("/audit", h.handleAudit)
		r.Get("/stats", h.handleStats)
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
