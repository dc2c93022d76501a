package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/saleaway/saleaway-api/internal/api"
	apiMiddleware "github.com/saleaway/saleaway-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Reads on listings and locations are open to anonymous
// callers; every write and the generation and upload endpoints require a
// verified ID token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	listingHandler := api.NewListingHandler(app.listingStore, app.logger)
	locationHandler := api.NewLocationHandler(app.locationStore, app.logger)
	uploadHandler := api.NewUploadHandler(app.objectStore, app.uploadURLTTL(), app.logger)
	generationHandler := api.NewGenerationHandler(app.generator, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenVerifier)

	r.Route("/api", func(r chi.Router) {
		// Public read endpoints
		r.Get("/listings", listingHandler.List)
		r.Get("/locations", locationHandler.List)
		r.Get("/locations/{id}", locationHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Generation endpoints; registered before /listings/{id} so
			// chi resolves the literal path first.
			r.Get("/listings/generate", generationHandler.Generate)
			r.Post("/listings/generate", generationHandler.Generate)

			r.Post("/listings", listingHandler.Create)
			r.Put("/listings/{id}", listingHandler.Update)
			r.Delete("/listings/{id}", listingHandler.Delete)

			r.Post("/locations", locationHandler.Create)
			r.Put("/locations/{id}", locationHandler.Update)
			r.Delete("/locations/{id}", locationHandler.Delete)

			r.Post("/uploads/presign", uploadHandler.CreateUploadURL)
		})

		// Single-listing reads stay public.
		r.Get("/listings/{id}", listingHandler.Get)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
