package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKid = "test-key-1"

func newJWKSServer(t *testing.T, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	doc := jwks{Keys: []jwk{{
		Kid: testKid,
		Kty: "RSA",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func newTestVerifier(t *testing.T, key *rsa.PrivateKey) (*Verifier, func()) {
	t.Helper()
	srv := newJWKSServer(t, &key.PublicKey)
	verifier := &Verifier{
		keySet:   NewKeySet(srv.URL),
		issuer:   "https://issuer.test",
		clientID: "client123",
	}
	return verifier, srv.Close
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       "user-abc",
		"iss":       "https://issuer.test",
		"client_id": "client123",
		"token_use": "access",
		"username":  "user-abc",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerifier_Verify_ValidToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier, cleanup := newTestVerifier(t, key)
	defer cleanup()

	claims, err := verifier.Verify(signToken(t, key, baseClaims()))

	assert.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "user-abc", claims.Username)
	assert.Equal(t, "access", claims.TokenUse)
}

func TestVerifier_Verify_ExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier, cleanup := newTestVerifier(t, key)
	defer cleanup()

	expired := baseClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	_, err = verifier.Verify(signToken(t, key, expired))

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifier_Verify_WrongClient(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier, cleanup := newTestVerifier(t, key)
	defer cleanup()

	foreign := baseClaims()
	foreign["client_id"] = "someone-else"

	_, err = verifier.Verify(signToken(t, key, foreign))

	assert.ErrorIs(t, err, ErrWrongClient)
}

func TestVerifier_Verify_WrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier, cleanup := newTestVerifier(t, key)
	defer cleanup()

	foreign := baseClaims()
	foreign["iss"] = "https://other.test"

	_, err = verifier.Verify(signToken(t, key, foreign))

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_Verify_SignatureFromAnotherKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier, cleanup := newTestVerifier(t, key)
	defer cleanup()

	_, err = verifier.Verify(signToken(t, otherKey, baseClaims()))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestKeySet_UnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, &key.PublicKey)
	defer srv.Close()

	keySet := NewKeySet(srv.URL)

	pub, err := keySet.Key(testKid)
	assert.NoError(t, err)
	assert.Equal(t, key.PublicKey.N, pub.N)

	_, err = keySet.Key("rotated-away")
	assert.Error(t, err)
}
