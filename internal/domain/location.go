package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field bounds for Location, mirrored by the database schema.
const (
	LocationNameMaxLen       = 200
	LocationAddressMaxLen    = 300
	LocationCityMaxLen       = 100
	LocationStateMaxLen      = 100
	LocationPostalCodeMaxLen = 20
)

// Location represents a pickup or meeting location attached to the
// marketplace. Timestamp semantics match Listing: CreatedAt is set once,
// UpdatedAt moves on every mutation, and neither is client-settable.
type Location struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLocation creates a Location with a fresh ID and both timestamps set to
// the current time. Returns an error if validation fails.
func NewLocation(name, address, city, state, postalCode string) (*Location, error) {
	now := time.Now().UTC()
	location := &Location{
		ID:         uuid.New(),
		Name:       name,
		Address:    address,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := location.Validate(); err != nil {
		return nil, err
	}

	return location, nil
}

// Validate checks the Location against its field constraints.
func (l *Location) Validate() error {
	if l.ID == uuid.Nil {
		return fmt.Errorf("%w: location ID cannot be empty", ErrInvalidID)
	}
	if l.Name == "" {
		return fmt.Errorf("%w: location name", ErrEmptyName)
	}

	bounds := []struct {
		field string
		value string
		max   int
	}{
		{"name", l.Name, LocationNameMaxLen},
		{"address", l.Address, LocationAddressMaxLen},
		{"city", l.City, LocationCityMaxLen},
		{"state", l.State, LocationStateMaxLen},
		{"postal code", l.PostalCode, LocationPostalCodeMaxLen},
	}
	for _, b := range bounds {
		if utf8.RuneCountInString(b.value) > b.max {
			return fmt.Errorf("%w: location %s exceeds %d characters", ErrValidation, b.field, b.max)
		}
	}
	return nil
}

// Apply copies the mutable fields onto the location and bumps UpdatedAt.
// CreatedAt is deliberately untouched.
func (l *Location) Apply(name, address, city, state, postalCode string) error {
	orig := *l

	l.Name = name
	l.Address = address
	l.City = city
	l.State = state
	l.PostalCode = postalCode

	if err := l.Validate(); err != nil {
		*l = orig
		return err
	}

	l.UpdatedAt = time.Now().UTC()
	return nil
}
