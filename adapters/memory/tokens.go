package memory

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

const (
	defaultTokenTTL = time.Hour
	defaultIssuer   = "go-statebridge/memory"
)

// TokenMint issues and validates HS256 id tokens for memory sessions.
type TokenMint struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
}

// NewTokenMint creates a mint with the given signing key. Zero ttl falls
// back to one hour.
func NewTokenMint(signingKey []byte, ttl time.Duration, issuer string) *TokenMint {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &TokenMint{
		signingKey: signingKey,
		ttl:        ttl,
		issuer:     issuer,
	}
}

// Generate signs a token whose subject is the user id.
func (m *TokenMint) Generate(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign id token")
	}
	return signed, nil
}

// Validate parses a token and returns its subject.
func (m *TokenMint) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.signingKey, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryAuth, "invalid id token")
	}
	return claims.Subject, nil
}
