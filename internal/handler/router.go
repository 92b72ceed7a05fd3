package handler

import (
	"log/slog"
	"net/http"

	"github.com/Stewz00/go-phishguard/internal/httputil"
	"github.com/Stewz00/go-phishguard/internal/logging"
	"github.com/Stewz00/go-phishguard/internal/middleware"
	"github.com/Stewz00/go-phishguard/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything the HTTP layer needs.
type RouterConfig struct {
	AuthService     *service.AuthService
	ClassifyService *service.ClassifyService
	Logger          *slog.Logger
	TrustedOrigins  []string
	MaxUploadBytes  int64
	DisableLimits   bool
}

// NewRouter wires middleware and routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	authHandler := NewAuthHandler(cfg.AuthService)
	classifyHandler := NewClassifyHandler(cfg.ClassifyService, cfg.MaxUploadBytes)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.TrustedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if !cfg.DisableLimits {
		r.Use(middleware.RateLimiter())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	// Auth routes with strict rate limiting
	r.Group(func(r chi.Router) {
		if !cfg.DisableLimits {
			r.Use(middleware.StrictRateLimiter())
		}
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.AuthService))
		r.Get("/auth/me", authHandler.Me)
		r.Post("/classify", classifyHandler.Classify)
		r.Post("/classify-image", classifyHandler.ClassifyImage)
		r.Get("/history", classifyHandler.History)
	})

	return r
}
