// Package cognito implements token verification against an AWS Cognito user
// pool. It fetches the pool's published JSON Web Key Set and verifies RS256
// ID tokens against it.
package cognito

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/saleaway/saleaway-api/internal/config"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/service/auth"
)

// idTokenUse is the token_use claim value Cognito sets on ID tokens.
// Access tokens carry "access" and are rejected.
const idTokenUse = "id"

// idTokenClaims are the Cognito ID token claims this service reads.
type idTokenClaims struct {
	TokenUse        string `json:"token_use"`
	Email           string `json:"email"`
	CognitoUsername string `json:"cognito:username"`
	jwt.RegisteredClaims
}

// Verifier validates Cognito ID tokens. The pool's key set is fetched on
// every call rather than cached; that refetch-per-request policy is
// correctness-safe and kept deliberately.
type Verifier struct {
	cfg        config.CognitoConfig
	logger     *slog.Logger
	httpClient *http.Client

	// issuer and jwksURL are derived from the region and pool id.
	// Overridable in tests.
	issuer  string
	jwksURL string
}

// Ensure Verifier implements auth.TokenVerifier
var _ auth.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier for the configured user pool. If log is
// nil, the default logger is used.
func NewVerifier(cfg config.CognitoConfig, log *slog.Logger) *Verifier {
	if log == nil {
		log = slog.Default()
	}

	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", cfg.Region, cfg.UserPoolID)
	return &Verifier{
		cfg:        cfg,
		logger:     log.With(slog.String("component", "cognito_verifier")),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		issuer:     issuer,
		jwksURL:    issuer + "/.well-known/jwks.json",
	}
}

// Verify implements auth.TokenVerifier. It decodes the unverified claims to
// read the declared key id, token type, and audience, fetches the pool's
// current key set, selects the matching key, and verifies signature, issuer,
// audience, and expiry.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*domain.Principal, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	if v.cfg.Region == "" || v.cfg.UserPoolID == "" || v.cfg.AppClientID == "" {
		return nil, auth.ErrMissingConfig
	}
	if rawToken == "" {
		return nil, auth.ErrMissingToken
	}

	// First pass: read header and claims without verifying the signature.
	unverified := &idTokenClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(rawToken, unverified)
	if err != nil {
		log.Debug("failed to parse token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", auth.ErrMalformedToken, err)
	}

	if unverified.TokenUse != idTokenUse {
		log.Debug("rejecting token with wrong token_use",
			slog.String("token_use", unverified.TokenUse))
		return nil, fmt.Errorf("%w: got %q", auth.ErrWrongTokenType, unverified.TokenUse)
	}

	kid, _ := parsed.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: missing kid header", auth.ErrMalformedToken)
	}

	key, err := v.lookupSigningKey(ctx, kid)
	if err != nil {
		return nil, err
	}

	// The token's own audience is preferred for validation when present;
	// tokens without an aud claim fall back to the configured client id.
	expectedAudience := v.cfg.AppClientID
	if len(unverified.Audience) > 0 && unverified.Audience[0] != "" {
		expectedAudience = unverified.Audience[0]
	}

	claims := &idTokenClaims{}
	_, err = jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(expectedAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token expired", slog.String("subject", unverified.Subject))
			return nil, auth.ErrExpiredToken
		}
		log.Debug("token validation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	principal := &domain.Principal{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Username: claims.CognitoUsername,
	}

	log.Debug("token verified",
		slog.String("subject", principal.Subject),
		slog.String("display_name", principal.DisplayName()))
	return principal, nil
}

// lookupSigningKey fetches the pool's current JWKS and materializes the RSA
// public key whose id matches kid.
func (v *Verifier) lookupSigningKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	set, err := jwk.Fetch(ctx, v.jwksURL, jwk.WithHTTPClient(v.httpClient))
	if err != nil {
		v.logger.Error("failed to fetch JWKS", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", auth.ErrJWKSFetch, err)
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		v.logger.Debug("kid not present in key set", slog.String("kid", kid))
		return nil, auth.ErrKeyNotFound
	}

	var pub rsa.PublicKey
	if err := key.Raw(&pub); err != nil {
		return nil, fmt.Errorf("%w: cannot materialize public key: %v", auth.ErrJWKSFetch, err)
	}
	return &pub, nil
}
