package auth

import "errors"

// Common authentication errors. Every failure mode of token verification
// maps to exactly one of these sentinels so that callers can branch on the
// cause with errors.Is.
var (
	// ErrMissingConfig indicates the identity provider configuration
	// (region, user pool, app client id) is incomplete.
	ErrMissingConfig = errors.New("identity provider configuration is missing")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMalformedToken indicates the token could not be parsed at all.
	ErrMalformedToken = errors.New("authentication token is malformed")

	// ErrWrongTokenType indicates the token is not an ID token. Access
	// tokens are rejected regardless of signature validity.
	ErrWrongTokenType = errors.New("token is not an ID token")

	// ErrKeyNotFound indicates the token's signing key id is absent from
	// the provider's published key set.
	ErrKeyNotFound = errors.New("signing key not found in provider key set")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidToken indicates the signature, issuer, or audience check
	// failed.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrJWKSFetch indicates the provider's key set could not be retrieved.
	ErrJWKSFetch = errors.New("failed to fetch provider key set")
)
