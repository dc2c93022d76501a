// Package store defines the persistence interfaces for the application's
// record kinds. Implementations live under internal/platform.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/saleaway/saleaway-api/internal/domain"
)

// ListingStore defines the interface for listing persistence.
type ListingStore interface {
	// Create saves a new listing. Returns ErrInvalidEntity wrapping the
	// domain validation error if the listing data is invalid.
	Create(ctx context.Context, listing *domain.Listing) error

	// GetByID retrieves a listing by its unique ID.
	// Returns ErrListingNotFound if the listing does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)

	// List returns all listings ordered newest-first by creation timestamp.
	List(ctx context.Context) ([]*domain.Listing, error)

	// Update saves changes to an existing listing. The stored creation
	// timestamp is never modified. Returns ErrListingNotFound if the
	// listing does not exist.
	Update(ctx context.Context, listing *domain.Listing) error

	// Delete removes a listing by its ID.
	// Returns ErrListingNotFound if the listing does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
