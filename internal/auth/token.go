package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carmarket/carmarketd/internal/model"
)

// DefaultTokenTTL is the lifetime of tokens issued by this service.
const DefaultTokenTTL = 24 * time.Hour

// Authentication errors.
var (
	// ErrMissingToken is returned when no bearer token was supplied.
	ErrMissingToken = errors.New("authorization token missing")

	// ErrInvalidToken is returned when a token is malformed, expired, or
	// carries a bad signature. Deliberately one class: callers get a 401
	// either way and the distinction only matters in logs.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the JWT payload. Field names match the tokens minted by the
// account service ("id" and "email" top-level claims).
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens and resolves them to identities.
type Verifier struct {
	// secret is the HMAC signing key shared with the account service.
	secret []byte
}

// NewVerifier creates a Verifier with the given shared HMAC secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token, returning the caller identity.
//
// Only HS256 is accepted. Allowing the token's own header to pick the
// algorithm is the classic JWT downgrade hole.
func (v *Verifier) Verify(tokenString string) (*model.Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(_ *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token carries no user id", ErrInvalidToken)
	}

	return &model.Identity{ID: claims.ID, Email: claims.Email}, nil
}

// Issue mints a signed token for the given identity, valid for ttl.
// Used by the CLI and tests; interactive logins are the account service's job.
func (v *Verifier) Issue(identity model.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    identity.ID,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
