package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rmarques/wishflix/internal/api/handlers"
	"github.com/rmarques/wishflix/internal/api/middleware"
	"github.com/rmarques/wishflix/internal/config"
	"github.com/rmarques/wishflix/internal/controllers"
	"github.com/rmarques/wishflix/internal/models"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewRouter builds the full route tree. The /movies subtree sits behind basic
// auth and the persisted request log.
func NewRouter(cfg *config.Config, db *models.Database, wishlist *controllers.WishlistController, catalog *controllers.CatalogController, logger *logrus.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Metrics)

	healthHandler := handlers.NewHealthHandler(db, logger)
	router.Get("/health", healthHandler.ServeHTTP)
	router.Handle("/metrics", promhttp.Handler())

	movieHandler := handlers.NewMovieHandler(wishlist, catalog, logger)
	router.Route("/movies", func(r chi.Router) {
		r.Use(middleware.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
		r.Use(middleware.RequestLog(db, logger))

		r.Post("/", movieHandler.AddMovie)
		r.Get("/", movieHandler.ListMovies)
		r.Get("/{id}", movieHandler.GetMovie)
		r.Patch("/{id}/state", movieHandler.UpdateState)
		r.Patch("/{id}/rating", movieHandler.RateMovie)
		r.Get("/{id}/history", movieHandler.GetHistory)
	})

	return router
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, wishlist *controllers.WishlistController, catalog *controllers.CatalogController, logger *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         ":" + cfg.ServerPort,
			Handler:      NewRouter(cfg, db, wishlist, catalog, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
