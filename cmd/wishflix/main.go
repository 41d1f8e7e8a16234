package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmarques/wishflix/internal/api"
	"github.com/rmarques/wishflix/internal/config"
	"github.com/rmarques/wishflix/internal/controllers"
	"github.com/rmarques/wishflix/internal/models"
	"github.com/rmarques/wishflix/internal/services/tmdb"
	"github.com/rmarques/wishflix/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Wishflix")

	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.WithField("database", cfg.DatabaseFile).Info("Database initialized")

	tmdbClient := tmdb.NewClient(cfg, logger)
	logger.Info("TMDB client initialized")

	wishlistCtrl := controllers.NewWishlistController(db, tmdbClient, logger)
	catalogCtrl := controllers.NewCatalogController(db, logger)

	server := api.NewServer(cfg, db, wishlistCtrl, catalogCtrl, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Wishflix is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Wishflix stopped")
	return nil
}
