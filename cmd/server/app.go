package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/saleaway/saleaway-api/internal/config"
	"github.com/saleaway/saleaway-api/internal/generation"
	"github.com/saleaway/saleaway-api/internal/platform/cognito"
	"github.com/saleaway/saleaway-api/internal/platform/gemini"
	"github.com/saleaway/saleaway-api/internal/platform/postgres"
	"github.com/saleaway/saleaway-api/internal/platform/s3"
	"github.com/saleaway/saleaway-api/internal/service/auth"
	"github.com/saleaway/saleaway-api/internal/storage"
	"github.com/saleaway/saleaway-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	listingStore  store.ListingStore
	locationStore store.LocationStore

	// Service boundaries
	tokenVerifier auth.TokenVerifier
	objectStore   storage.ObjectStore
	generator     generation.ListingGenerator
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.listingStore = postgres.NewPostgresListingStore(db, logger)
	app.locationStore = postgres.NewPostgresLocationStore(db, logger)
	logger.Info("Postgres stores initialized")

	app.tokenVerifier = cognito.NewVerifier(cfg.Cognito, logger)
	logger.Info("Cognito token verifier initialized",
		"region", cfg.Cognito.Region,
		"user_pool_id", cfg.Cognito.UserPoolID)

	gateway, err := s3.NewGateway(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	app.objectStore = gateway
	logger.Info("S3 object store initialized",
		"bucket", cfg.Storage.Bucket,
		"region", cfg.Storage.Region)

	app.generator, err = gemini.NewListingGenerator(ctx, logger, cfg.LLM, app.objectStore)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize listing generator: %w", err)
	}
	logger.Info("Listing generator initialized",
		"text_model", cfg.LLM.TextModel,
		"image_model", cfg.LLM.ImageModel)

	return app, nil
}

// uploadURLTTL resolves the configured presigned-URL lifetime.
func (app *application) uploadURLTTL() time.Duration {
	return time.Duration(app.config.Storage.UploadURLTTLSeconds) * time.Second
}

// cleanup releases resources held by the application. Called during
// graceful shutdown after the HTTP server has stopped.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
