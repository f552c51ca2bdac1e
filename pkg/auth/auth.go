// Package auth issues and verifies bearer tokens (JWS signed with HS256).
package auth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/opst/mealplanner/pkg/domain"
	xe "github.com/opst/mealplanner/pkg/errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidKey   = errors.New("invalid key")
)

// MinKeyLength is the minimum length of secret keys, in bytes.
const MinKeyLength = 32

// Claims of tokens.
//
// Subject ("sub") is the user id.
type Claims struct {
	jwt.RegisteredClaims

	// private claims
	Admin bool `json:"mealplanner/admin,omitempty"`
}

// UserId returns the user id in Subject.
func (c *Claims) UserId() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: subject is not a user id: %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

type Keyring struct {
	issuer string
	key    []byte
}

// New returns a Keyring signing and verifying tokens with the key.
func New(issuer string, key []byte) (*Keyring, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: key should be %d bytes or longer", ErrInvalidKey, MinKeyLength)
	}
	return &Keyring{issuer: issuer, key: key}, nil
}

// LoadKeyring reads a secret key from the file at path.
//
// Leading and trailing whitespaces in the file are ignored.
func LoadKeyring(issuer string, path string) (*Keyring, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return New(issuer, bytes.TrimSpace(content))
}

// Issue signs a new token for the user, expiring after ttl.
func (k *Keyring) Issue(user domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    k.issuer,
			Subject:   strconv.FormatInt(user.Id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Admin: user.Admin,
	})
	return tok.SignedString(k.key)
}

// Verify checks signature, issuer and expiry of the token, and returns its claims.
//
// Errors caused by the token itself are ErrInvalidToken.
func (k *Keyring) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token, claims,
		func(*jwt.Token) (interface{}, error) { return k.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(k.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if _, err := claims.UserId(); err != nil {
		return nil, err
	}
	return claims, nil
}
