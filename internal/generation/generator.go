// Package generation defines the listing-generation boundary between the
// application core and external AI services, following the same hexagonal
// pattern as the store and storage interfaces.
package generation

import (
	"context"

	"github.com/shopspring/decimal"
)

// Draft is the assembled result of the generation pipeline: a listing the
// client may later persist through the normal write endpoint. An empty
// ImageURL means image generation or upload degraded and no image is
// attached; a Draft with no image is still a successful result.
type Draft struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// ListingGenerator produces a listing draft from a seed title.
type ListingGenerator interface {
	// GenerateListing runs the generation pipeline for the given seed
	// title. It fails with ErrEmptyTitle for an empty title and
	// ErrInvalidResponse when the text model's output cannot be parsed.
	// Image-stage failures never fail the pipeline; they only leave
	// Draft.ImageURL empty. The draft is returned without being persisted.
	GenerateListing(ctx context.Context, title string) (*Draft, error)
}
