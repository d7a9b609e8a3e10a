package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// expired, malformed, or missing subject. Callers cannot tell the causes apart.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer issues and verifies the API's bearer tokens. Tokens carry the
// user's login as the "sub" claim and an absolute "exp" of now + TTL. There is
// no revocation: a token stays valid for its full TTL.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer for the named HMAC algorithm (HS256, HS384
// or HS512). Non-HMAC algorithm names are rejected so a misconfigured ALG
// cannot silently downgrade signing.
func NewTokenIssuer(secret []byte, alg string, ttl time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", alg)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC-based", alg)
	}
	return &TokenIssuer{secret: secret, method: method, ttl: ttl}, nil
}

// Issue signs a token for the given subject (the user's login).
func (t *TokenIssuer) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(t.method, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature, algorithm and expiry, and returns the subject claim.
func (t *TokenIssuer) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr,
		func(tk *jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
