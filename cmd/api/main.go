package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelf-locator/internal/auth"
	"shelf-locator/internal/config"
	"shelf-locator/internal/database"
	"shelf-locator/internal/handler"
	"shelf-locator/internal/repository"
	"shelf-locator/internal/router"
	"shelf-locator/internal/seed"
	"shelf-locator/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shelf-locator API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Ensure the products table and its unique SKU index exist
	if err := database.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	// Initialize repository
	productRepo := repository.NewProductRepository(pool, logger)

	// Initialize the session gate for the shared login
	gate := auth.NewGate(cfg.Auth, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	searchService := service.NewSearchService(productRepo, logger)
	importService := service.NewImportService(productRepo, logger)

	// Optionally seed the catalog from a CSV file before serving
	if cfg.Seed.Enabled {
		if err := seedCatalog(ctx, cfg.Seed, importService, logger); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	searchHandler := handler.NewSearchHandler(searchService, logger)
	uploadHandler := handler.NewUploadHandler(importService, logger)
	authHandler := handler.NewAuthHandler(gate, logger)

	// Initialize router
	mux := router.New(productHandler, searchHandler, uploadHandler, authHandler, gate, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedCatalog imports the configured CSV into the catalog, preferring S3
// when enabled and falling back to the local file system.
func seedCatalog(ctx context.Context, cfg config.SeedConfig, importService service.ImportService, logger zerolog.Logger) error {
	fileLoader := seed.NewFileLoader(logger)
	loader := fileLoader

	if cfg.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 seed loader, falling back to local file system only")
		} else {
			loader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, true, logger)
		}
	}

	rc, err := loader.Open(ctx, cfg.Path)
	if err != nil {
		return err
	}
	defer rc.Close()

	result, err := importService.ImportCSV(ctx, rc)
	if err != nil {
		return err
	}

	logger.Info().
		Str("path", cfg.Path).
		Int("imported", result.SuccessCount).
		Int("rejected", result.ErrorCount).
		Msg("catalog seeded")

	for _, msg := range result.Errors {
		logger.Warn().Str("row_error", msg).Msg("seed row rejected")
	}

	return nil
}
