// Package admintoken signs and verifies the HS256 bearer tokens handed to the site admin.
package admintoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for any malformed, unsigned, wrongly signed or expired token.
	ErrInvalidToken = errors.New("invalid token")
)

// RoleAdmin is the only role the site issues.
const RoleAdmin = "admin"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Claims are the claims carried by an admin token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Codec issues and verifies tokens with a shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func New(secret string, ttl time.Duration) *Codec {
	return NewWithOptions(secret, ttl, nil)
}

func NewWithOptions(secret string, ttl time.Duration, clock Clock) *Codec {
	if clock == nil {
		clock = realClock{}
	}
	return &Codec{secret: []byte(secret), ttl: ttl, clock: clock}
}

// Issue signs a token asserting role, valid for the codec TTL from now.
func (c *Codec) Issue(role string) (token string, expiresAt time.Time, err error) {
	if len(c.secret) == 0 {
		return "", time.Time{}, errors.New("admintoken: empty signing secret")
	}
	now := c.clock.Now().UTC()
	expiresAt = now.Add(c.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return token, expiresAt.Truncate(time.Second), nil
}

// Parse verifies signature and expiry and returns the claims. The role is not checked
// here; authorization is the caller's decision.
func (c *Codec) Parse(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
