package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/saleaway/saleaway-api/internal/api/middleware"
	"github.com/saleaway/saleaway-api/internal/api/shared"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/storage"
)

// UploadURLRequest is the payload for requesting a presigned upload URL.
type UploadURLRequest struct {
	FileName    string `json:"file_name"    validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// UploadHandler issues presigned upload URLs for listing images.
type UploadHandler struct {
	objects storage.ObjectStore
	ttl     time.Duration
	logger  *slog.Logger
}

// NewUploadHandler creates a new UploadHandler. ttl bounds the lifetime of
// issued URLs.
func NewUploadHandler(objects storage.ObjectStore, ttl time.Duration, log *slog.Logger) *UploadHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UploadHandler")
	}
	return &UploadHandler{
		objects: objects,
		ttl:     ttl,
		logger:  log.With(slog.String("component", "upload_handler")),
	}
}

// CreateUploadURL handles POST /uploads/presign requests. Requires a valid
// principal.
func (h *UploadHandler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UploadURLRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	target, err := h.objects.CreateUploadURL(r.Context(), req.FileName, req.ContentType, h.ttl)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err.Error(), err)
		return
	}

	if principal, ok := middleware.GetPrincipal(r); ok {
		log.Info("presigned upload URL issued",
			slog.String("key", target.Key),
			slog.String("requested_by", principal.DisplayName()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, target)
}
