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
)

// LocationRequest is the write payload for locations. As with listings,
// timestamp fields are absent and therefore read-only.
type LocationRequest struct {
	Name       string `json:"name"        validate:"required,max=200"`
	Address    string `json:"address"     validate:"max=300"`
	City       string `json:"city"        validate:"max=100"`
	State      string `json:"state"       validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
}

// LocationHandler handles location-related HTTP requests.
type LocationHandler struct {
	locations store.LocationStore
	logger    *slog.Logger
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locations store.LocationStore, log *slog.Logger) *LocationHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LocationHandler")
	}
	return &LocationHandler{
		locations: locations,
		logger:    log.With(slog.String("component", "location_handler")),
	}
}

// List handles GET /locations requests. Open to anonymous callers; results
// are ordered newest-first.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	locations, err := h.locations.List(r.Context())
	if err != nil {
		log.Error("failed to list locations", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, locations)
}

// Get handles GET /locations/{id} requests. Open to anonymous callers.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	location, err := h.locations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrLocationNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Location not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, location)
}

// Create handles POST /locations requests. Requires a valid principal.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	location, err := domain.NewLocation(req.Name, req.Address, req.City, req.State, req.PostalCode)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.locations.Create(r.Context(), location); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	log.Debug("location created", slog.String("location_id", location.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, location)
}

// Update handles PUT /locations/{id} requests. Requires a valid principal.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	location, err := h.locations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrLocationNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Location not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	if err := location.Apply(req.Name, req.Address, req.City, req.State, req.PostalCode); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.locations.Update(r.Context(), location); err != nil {
		if errors.Is(err, store.ErrLocationNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Location not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, location)
}

// Delete handles DELETE /locations/{id} requests. Requires a valid principal.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.locations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrLocationNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Location not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LocationHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid location ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *LocationHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*LocationRequest, bool) {
	var req LocationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	if err := shared.Validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return nil, false
	}
	return &req, true
}
