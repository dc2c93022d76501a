package cognito

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/saleaway/saleaway-api/internal/config"
	"github.com/saleaway/saleaway-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRegion   = "us-east-1"
	testPoolID   = "us-east-1_TestPool"
	testClientID = "test-client-id"
	testKid      = "test-key-1"
)

var testIssuer = "https://cognito-idp." + testRegion + ".amazonaws.com/" + testPoolID

// newSigningKey generates an RSA key pair for signing test tokens.
func newSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// newJWKSServer serves a JWKS containing the public halves of the given keys
// under the given key ids.
func newJWKSServer(t *testing.T, keys map[string]*rsa.PrivateKey) *httptest.Server {
	t.Helper()

	set := jwk.NewSet()
	for kid, priv := range keys {
		key, err := jwk.FromRaw(&priv.PublicKey)
		require.NoError(t, err)
		require.NoError(t, key.Set(jwk.KeyIDKey, kid))
		require.NoError(t, key.Set(jwk.AlgorithmKey, "RS256"))
		require.NoError(t, set.AddKey(key))
	}

	body, err := json.Marshal(set)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestVerifier builds a Verifier pointed at the test JWKS server.
func newTestVerifier(jwksURL string) *Verifier {
	cfg := config.CognitoConfig{
		Region:      testRegion,
		UserPoolID:  testPoolID,
		AppClientID: testClientID,
	}
	v := NewVerifier(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	v.jwksURL = jwksURL
	return v
}

// defaultClaims returns a fully valid set of ID token claims.
func defaultClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":              testIssuer,
		"sub":              "subject-123",
		"aud":              testClientID,
		"exp":              time.Now().Add(time.Hour).Unix(),
		"iat":              time.Now().Unix(),
		"token_use":        "id",
		"email":            "buyer@example.com",
		"cognito:username": "buyer",
	}
}

// signToken signs claims with the given key under the given kid.
func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	principal, err := v.Verify(context.Background(), signToken(t, key, testKid, defaultClaims()))

	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "subject-123", principal.Subject)
	assert.Equal(t, "buyer@example.com", principal.Email)
	assert.Equal(t, "buyer", principal.Username)
	assert.Equal(t, "buyer@example.com", principal.DisplayName())
}

func TestVerifyDisplayNameFallsBackToUsername(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	claims := defaultClaims()
	delete(claims, "email")
	principal, err := v.Verify(context.Background(), signToken(t, key, testKid, claims))

	require.NoError(t, err)
	assert.Equal(t, "buyer", principal.DisplayName())
}

func TestVerifyKeyNotFound(t *testing.T) {
	signingKey := newSigningKey(t)
	publishedKey := newSigningKey(t)
	// The JWKS advertises a different key than the one used to sign.
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{"other-key": publishedKey})
	v := newTestVerifier(srv.URL)

	_, err := v.Verify(context.Background(), signToken(t, signingKey, testKid, defaultClaims()))

	assert.ErrorIs(t, err, auth.ErrKeyNotFound)
}

func TestVerifyRejectsAccessToken(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	// Correctly signed, but declared as an access token.
	claims := defaultClaims()
	claims["token_use"] = "access"
	_, err := v.Verify(context.Background(), signToken(t, key, testKid, claims))

	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestVerifyExpiredToken(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	claims := defaultClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	_, err := v.Verify(context.Background(), signToken(t, key, testKid, claims))

	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestVerifyWrongSignature(t *testing.T) {
	publishedKey := newSigningKey(t)
	otherKey := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: publishedKey})
	v := newTestVerifier(srv.URL)

	// Signed with a different key but declaring the published kid.
	_, err := v.Verify(context.Background(), signToken(t, otherKey, testKid, defaultClaims()))

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyWrongIssuer(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	claims := defaultClaims()
	claims["iss"] = "https://cognito-idp.us-east-1.amazonaws.com/us-east-1_OtherPool"
	_, err := v.Verify(context.Background(), signToken(t, key, testKid, claims))

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenAudiencePreferred(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	// The token's own audience is used for validation even when it differs
	// from the configured client id.
	claims := defaultClaims()
	claims["aud"] = "some-other-client"
	principal, err := v.Verify(context.Background(), signToken(t, key, testKid, claims))

	require.NoError(t, err)
	assert.Equal(t, "subject-123", principal.Subject)
}

func TestVerifyMalformedToken(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)

	_, err := v.Verify(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, auth.ErrMalformedToken)
}

func TestVerifyMissingToken(t *testing.T) {
	v := newTestVerifier("http://unused.invalid/jwks.json")

	_, err := v.Verify(context.Background(), "")

	assert.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestVerifyMissingConfig(t *testing.T) {
	v := NewVerifier(config.CognitoConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := v.Verify(context.Background(), "anything")

	assert.ErrorIs(t, err, auth.ErrMissingConfig)
}

func TestVerifyJWKSFetchFailure(t *testing.T) {
	key := newSigningKey(t)
	srv := newJWKSServer(t, map[string]*rsa.PrivateKey{testKid: key})
	v := newTestVerifier(srv.URL)
	srv.Close()

	_, err := v.Verify(context.Background(), signToken(t, key, testKid, defaultClaims()))

	assert.ErrorIs(t, err, auth.ErrJWKSFetch)
}
