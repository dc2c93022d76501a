package api

import (
	"log/slog"
	"net/http"

	"github.com/saleaway/saleaway-api/internal/api/shared"
	"github.com/saleaway/saleaway-api/internal/generation"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
)

// GenerateListingRequest is the payload for the generation endpoint.
type GenerateListingRequest struct {
	Title string `json:"title" validate:"required"`
}

// GenerationHandler exposes the AI-assisted listing generation endpoint.
type GenerationHandler struct {
	generator generation.ListingGenerator
	logger    *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generator generation.ListingGenerator, log *slog.Logger) *GenerationHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerationHandler")
	}
	return &GenerationHandler{
		generator: generator,
		logger:    log.With(slog.String("component", "generation_handler")),
	}
}

// Generate handles POST /listings/generate requests with a {title} body and
// GET /listings/generate?title= requests. Requires a valid principal on
// both verbs. The returned draft is not persisted; persistence is a
// separate, later client-initiated write.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	title, ok := h.seedTitle(w, r)
	if !ok {
		return
	}

	draft, err := h.generator.GenerateListing(r.Context(), title)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		if statusCode >= http.StatusInternalServerError {
			shared.RespondWithErrorAndLog(w, r, statusCode, err.Error(), err)
			return
		}
		shared.RespondWithError(w, r, statusCode, err.Error())
		return
	}

	log.Debug("listing draft returned",
		slog.String("title", title),
		slog.Bool("has_image", draft.ImageURL != ""))
	shared.RespondWithJSON(w, r, http.StatusOK, draft)
}

// seedTitle extracts the seed title from the query string on GET and the
// JSON body on POST.
func (h *GenerationHandler) seedTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method == http.MethodGet {
		title := r.URL.Query().Get("title")
		if title == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
			return "", false
		}
		return title, true
	}

	var req GenerateListingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return "", false
	}
	if err := shared.Validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
		return "", false
	}
	return req.Title, true
}
