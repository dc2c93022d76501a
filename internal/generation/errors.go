package generation

import "errors"

// Common errors returned by the generation package.
var (
	// ErrEmptyTitle is returned when the seed title is empty.
	ErrEmptyTitle = errors.New("seed title cannot be empty")

	// ErrGenerationFailed is returned when the text model call fails.
	ErrGenerationFailed = errors.New("failed to generate listing")

	// ErrInvalidResponse is returned when the text model's output cannot
	// be parsed into the expected structure.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is
	// invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
