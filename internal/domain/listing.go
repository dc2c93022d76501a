package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field bounds for Listing. Name and image URL are mirrored by the database
// schema; descriptions are unbounded text in storage, and the description
// bound applies only when truncating generated drafts.
const (
	ListingNameMaxLen        = 200
	ListingDescriptionMaxLen = 2000
	ListingImageURLMaxLen    = 500
)

// Listing represents a marketplace listing. Prices are fixed-point decimals
// with two places. CreatedAt is set once at creation; UpdatedAt moves on
// every mutation. Neither timestamp is ever client-settable.
type Listing struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewListing creates a Listing with a fresh ID and both timestamps set to
// the current time. Returns an error if validation fails.
func NewListing(name, description string, price decimal.Decimal, imageURL string) (*Listing, error) {
	now := time.Now().UTC()
	listing := &Listing{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}

	return listing, nil
}

// Validate checks the Listing against its field constraints.
func (l *Listing) Validate() error {
	if l.ID == uuid.Nil {
		return fmt.Errorf("%w: listing ID cannot be empty", ErrInvalidID)
	}
	if l.Name == "" {
		return fmt.Errorf("%w: listing name", ErrEmptyName)
	}
	if utf8.RuneCountInString(l.Name) > ListingNameMaxLen {
		return fmt.Errorf("%w: listing name exceeds %d characters", ErrValidation, ListingNameMaxLen)
	}
	if utf8.RuneCountInString(l.ImageURL) > ListingImageURLMaxLen {
		return fmt.Errorf("%w: listing image URL exceeds %d characters", ErrValidation, ListingImageURLMaxLen)
	}
	if l.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Apply copies the mutable fields onto the listing and bumps UpdatedAt.
// CreatedAt is deliberately untouched; the stored creation timestamp can
// never be changed by a write.
func (l *Listing) Apply(name, description string, price decimal.Decimal, imageURL string) error {
	orig := *l

	l.Name = name
	l.Description = description
	l.Price = price
	l.ImageURL = imageURL

	if err := l.Validate(); err != nil {
		*l = orig
		return err
	}

	l.UpdatedAt = time.Now().UTC()
	return nil
}
