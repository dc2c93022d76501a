// Package auth defines the token verification boundary between the HTTP
// layer and the external identity provider.
package auth

import (
	"context"

	"github.com/saleaway/saleaway-api/internal/domain"
)

// TokenVerifier validates a bearer token and produces the authenticated
// principal it represents. Implementations are expected to verify the
// signature against the provider's published key set and enforce issuer,
// audience, expiry, and token type.
type TokenVerifier interface {
	// Verify validates the raw token string. On success it returns the
	// principal derived from the verified claims. On failure it returns
	// one of the sentinel errors defined in this package.
	Verify(ctx context.Context, rawToken string) (*domain.Principal, error)
}
