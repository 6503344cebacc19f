package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/ipflix/ipflix/internal/adapter/controller/http/middleware"
)

// RouterConfig wires the HTTP surface
type RouterConfig struct {
	Service IntelService
	Logger  *slog.Logger
	Health  HealthInfo
	// Requests per minute per client IP; 0 disables limiting
	RateLimitPerMinute int
}

// NewRouter builds the chi router with the global middleware stack and all
// public routes.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ipHandler := NewIPHandler(cfg.Service, logger)
	intelHandler := NewIntelHandler(cfg.Service, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders)

	// Public read-only API: any origin may read it
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.Limit(cfg.RateLimitPerMinute, time.Minute,
			httprate.WithKeyFuncs(middleware.ClientIPKey),
		))
	}

	r.Get("/health", HealthCheck(cfg.Health))

	// Responses describing the caller must never be cached
	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(middleware.NoStore))
		r.Get("/ip", ipHandler.PlainIP)
		r.Get("/api/ip", ipHandler.ClientInfo)
	})

	// Lookups of an explicit IP are stable for an hour
	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(middleware.PublicHour))
		r.Get("/api/ip/details", intelHandler.Details)
		r.Get("/api/ip/threat", intelHandler.Threat)
		r.Get("/api/osint", intelHandler.OSINT)
	})

	return r
}
