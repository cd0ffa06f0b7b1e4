// Package rest assembles the HTTP router for the API.
package rest

import (
	"net/http"

	"fintrack-backend/application/ports"
	"fintrack-backend/infrastructure/config"
	"fintrack-backend/interfaces/http/rest/handlers"
	"fintrack-backend/interfaces/http/rest/middleware"
	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	cfg      *config.Config
	verifier *auth.Verifier
	metrics  *observability.Metrics
	users    ports.UserRepository
	expenses ports.ExpenseRepository

	authHandler         *handlers.AuthHandler
	expenseHandler      *handlers.ExpenseHandler
	userHandler         *handlers.UserHandler
	fileHandler         *handlers.FileHandler
	notificationHandler *handlers.NotificationHandler

	logger *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(
	cfg *config.Config,
	verifier *auth.Verifier,
	metrics *observability.Metrics,
	users ports.UserRepository,
	expenses ports.ExpenseRepository,
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	userHandler *handlers.UserHandler,
	fileHandler *handlers.FileHandler,
	notificationHandler *handlers.NotificationHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:                 cfg,
		verifier:            verifier,
		metrics:             metrics,
		users:               users,
		expenses:            expenses,
		authHandler:         authHandler,
		expenseHandler:      expenseHandler,
		userHandler:         userHandler,
		fileHandler:         fileHandler,
		notificationHandler: notificationHandler,
		logger:              logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health and readiness
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", rt.authHandler.SignUp)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.Refresh)
			r.Post("/forgot-password", rt.authHandler.ForgotPassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(rt.verifier, rt.logger))
				r.Get("/me", rt.authHandler.Me)
			})
		})

		// Everything below requires a verified token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.verifier, rt.logger))

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", rt.expenseHandler.Create)
				r.Get("/", rt.expenseHandler.List)
				r.Get("/{expenseID}", rt.expenseHandler.Get)
				r.Put("/{expenseID}", rt.expenseHandler.Update)
				r.Delete("/{expenseID}", rt.expenseHandler.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", rt.userHandler.Lookup)
				r.Get("/{userID}", rt.userHandler.Get)
				r.Put("/{userID}", rt.userHandler.Update)
				r.Delete("/{userID}", rt.userHandler.Delete)
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", rt.fileHandler.Info)
				r.Post("/upload", rt.fileHandler.Upload)
				r.Route("/objects", func(r chi.Router) {
					r.Get("/", rt.fileHandler.List)
					r.Get("/{key}", rt.fileHandler.Download)
					r.Get("/{key}/url", rt.fileHandler.PresignURL)
					r.Get("/{key}/preview", rt.fileHandler.Preview)
					r.Delete("/{key}", rt.fileHandler.Delete)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Post("/send", rt.notificationHandler.Send)
				r.Get("/stats", rt.notificationHandler.Stats)
			})
		})
	})

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck probes the backing tables before reporting ready.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := rt.users.Ping(req.Context()); err != nil {
		rt.logger.Warn("readiness probe failed on users table", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}
	if err := rt.expenses.Ping(req.Context()); err != nil {
		rt.logger.Warn("readiness probe failed on expenses table", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
