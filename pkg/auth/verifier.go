package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verification errors the middleware distinguishes for its responses.
var (
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrInvalidToken     = errors.New("invalid token")
	ErrWrongClient      = errors.New("token was not issued for this client")
)

// Claims is the user identity extracted from a verified access token.
type Claims struct {
	UserID   string
	Email    string
	Name     string
	Username string
	TokenUse string
}

// Verifier validates Cognito access tokens against the pool's JWKS.
type Verifier struct {
	keySet   *KeySet
	issuer   string
	clientID string
}

// NewVerifier builds a verifier for the given user pool. Region and pool id
// determine both the expected issuer and the JWKS location.
func NewVerifier(region, userPoolID, clientID string) *Verifier {
	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
	return &Verifier{
		keySet:   NewKeySet(issuer + "/.well-known/jwks.json"),
		issuer:   issuer,
		clientID: clientID,
	}
}

// Verify checks the token signature, issuer and client, and returns the
// caller's claims. Cognito access tokens carry the app client in a
// `client_id` claim rather than the standard audience.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, v.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if clientID, _ := claims["client_id"].(string); clientID != v.clientID {
		return nil, ErrWrongClient
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	out := &Claims{UserID: sub}
	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)
	out.Username, _ = claims["username"].(string)
	out.TokenUse, _ = claims["token_use"].(string)
	return out, nil
}

func (v *Verifier) keyfunc(token *jwt.Token) (interface{}, error) {
	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, errors.New("token header missing kid")
	}
	return v.keySet.Key(kid)
}
