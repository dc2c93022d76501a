package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/saleaway/saleaway-api/internal/domain"
)

// LocationStore defines the interface for location persistence.
type LocationStore interface {
	// Create saves a new location. Returns ErrInvalidEntity wrapping the
	// domain validation error if the location data is invalid.
	Create(ctx context.Context, location *domain.Location) error

	// GetByID retrieves a location by its unique ID.
	// Returns ErrLocationNotFound if the location does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)

	// List returns all locations ordered newest-first by creation timestamp.
	List(ctx context.Context) ([]*domain.Location, error)

	// Update saves changes to an existing location. The stored creation
	// timestamp is never modified. Returns ErrLocationNotFound if the
	// location does not exist.
	Update(ctx context.Context, location *domain.Location) error

	// Delete removes a location by its ID.
	// Returns ErrLocationNotFound if the location does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
