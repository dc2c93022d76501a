package api

import (
	"errors"
	"net/http"

	"github.com/saleaway/saleaway-api/internal/generation"
	"github.com/saleaway/saleaway-api/internal/service/auth"
	"github.com/saleaway/saleaway-api/internal/storage"
	"github.com/saleaway/saleaway-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMalformedToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrKeyNotFound),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrEmptyTitle):
		return http.StatusBadRequest

	// Upstream dependency failures surface as server errors
	case errors.Is(err, auth.ErrJWKSFetch),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, storage.ErrUploadFailed),
		errors.Is(err, storage.ErrPresignFailed):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
