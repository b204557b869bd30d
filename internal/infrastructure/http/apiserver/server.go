// Package apiserver provides the JSON API HTTP server implementation
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/application/ai"
	"github.com/YoungCoderX/Recipe-Rack/internal/application/auth"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/handlers"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/middleware"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/monitoring"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/security"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// APIServer represents the Recipe Rack JSON API server
type APIServer struct {
	config        *config.Config
	logger        *zap.Logger
	server        *http.Server
	router        *chi.Mux
	recipeService inbound.RecipeService
	authService   *auth.Service
	tokenService  *security.AuthService
	aiService     *ai.Service
	metrics       *monitoring.Metrics
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	recipeService inbound.RecipeService,
	authService *auth.Service,
	tokenService *security.AuthService,
	aiService *ai.Service,
	metrics *monitoring.Metrics,
) *APIServer {
	server := &APIServer{
		config:        cfg,
		logger:        log,
		recipeService: recipeService,
		authService:   authService,
		tokenService:  tokenService,
		aiService:     aiService,
		metrics:       metrics,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the router and middleware chain
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(middleware.Metrics(s.metrics))

	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.metrics, s.logger)
	authH := handlers.NewAuthAPIHandlers(s.authService, s.logger)
	aiH := handlers.NewAIAPIHandlers(s.aiService, s.metrics, s.logger)
	streamH := handlers.NewStreamHandlers(s.recipeService, s.metrics, s.logger)

	r.Get("/health", recipeH.HealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication routes
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.JSONOnly()).Post("/register", authH.Register)
			r.With(middleware.JSONOnly()).Post("/login", authH.Login)
			r.Post("/session", authH.Bootstrap)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.tokenService))
				r.Post("/logout", authH.Logout)
			})
		})

		// Recipe routes. The stream endpoint must stay outside JSONOnly
		// so the WebSocket upgrade handshake can pass through.
		r.Route("/recipes", func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokenService))

			r.Get("/stream", streamH.StreamRecipes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.JSONOnly())
				r.Get("/", recipeH.ListRecipes)
				r.Post("/", recipeH.CreateRecipe)
				r.Get("/{id}", recipeH.GetRecipe)
				r.Delete("/{id}", recipeH.DeleteRecipe)
			})
		})

		// AI routes
		r.Route("/ai", func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokenService))
			r.Use(middleware.JSONOnly())
			r.Post("/generate-recipe", aiH.GenerateRecipe)
		})

		r.Get("/health", recipeH.HealthCheck)
	})

	return r
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting Recipe Rack API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
