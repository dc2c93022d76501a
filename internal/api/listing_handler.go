// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saleaway/saleaway-api/internal/api/shared"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/redact"
	"github.com/saleaway/saleaway-api/internal/store"
	"github.com/shopspring/decimal"
)

// ListingRequest is the write payload for listings. It deliberately carries
// no timestamp fields: created_at and updated_at are read-only, and any
// client-supplied values are silently ignored.
type ListingRequest struct {
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"   validate:"omitempty,max=500"`
}

// ListingHandler handles listing-related HTTP requests.
type ListingHandler struct {
	listings store.ListingStore
	logger   *slog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings store.ListingStore, log *slog.Logger) *ListingHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ListingHandler")
	}
	return &ListingHandler{
		listings: listings,
		logger:   log.With(slog.String("component", "listing_handler")),
	}
}

// List handles GET /listings requests. Open to anonymous callers; results
// are ordered newest-first.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	listings, err := h.listings.List(r.Context())
	if err != nil {
		log.Error("failed to list listings", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listings)
}

// Get handles GET /listings/{id} requests. Open to anonymous callers.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	listing, err := h.listings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Listing not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listing)
}

// Create handles POST /listings requests. Requires a valid principal.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	listing, err := domain.NewListing(req.Name, req.Description, req.Price, req.ImageURL)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.listings.Create(r.Context(), listing); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	log.Debug("listing created", slog.String("listing_id", listing.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, listing)
}

// Update handles PUT /listings/{id} requests. Requires a valid principal.
// The stored creation timestamp is never affected by the payload.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	listing, err := h.listings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Listing not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	if err := listing.Apply(req.Name, req.Description, req.Price, req.ImageURL); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.listings.Update(r.Context(), listing); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Listing not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listing)
}

// Delete handles DELETE /listings/{id} requests. Requires a valid principal.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.listings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Listing not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid listing ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ListingHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*ListingRequest, bool) {
	var req ListingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	if err := shared.Validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return nil, false
	}
	if req.Price.IsNegative() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Price cannot be negative")
		return nil, false
	}
	return &req, true
}
