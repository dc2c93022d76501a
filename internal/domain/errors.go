// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyName is returned when a required name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativePrice is returned when a listing price is negative.
	ErrNegativePrice = errors.New("price cannot be negative")
)
