package adminauth

import (
	"strings"
	"time"

	"github.com/need-mission/site-api/internal/app/apperr"
	"github.com/need-mission/site-api/internal/platform/auth/admintoken"
)

const (
	msgMissingToken = "Missing token"
	msgInvalidToken = "Invalid token"
	msgForbidden    = "Forbidden"
)

// Grant is proof that a request passed the admin gate. Only Gate can produce a valid
// Grant; the zero value is rejected by every admin-only operation.
type Grant struct {
	valid     bool
	expiresAt time.Time
}

func (g Grant) Valid() bool { return g.valid }

// ExpiresAt is the expiry of the credential the grant was derived from.
func (g Grant) ExpiresAt() time.Time { return g.expiresAt }

// RequireGrant returns an authentication error for a zero Grant.
func RequireGrant(g Grant) error {
	if !g.valid {
		return apperr.Unauthenticated(msgMissingToken)
	}
	return nil
}

// Gate verifies admin credentials. It keeps no state and does no I/O.
type Gate struct {
	codec *admintoken.Codec
}

func NewGate(codec *admintoken.Codec) *Gate {
	return &Gate{codec: codec}
}

// Check validates an Authorization header value of the form "Bearer <token>".
func (g *Gate) Check(authorization string) (Grant, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		return Grant{}, apperr.Unauthenticated(msgMissingToken)
	}
	return g.CheckToken(strings.TrimSpace(authorization[len(prefix):]))
}

// CheckToken validates a raw token.
func (g *Gate) CheckToken(token string) (Grant, error) {
	if token == "" {
		return Grant{}, apperr.Unauthenticated(msgMissingToken)
	}
	claims, err := g.codec.Parse(token)
	if err != nil {
		return Grant{}, apperr.Unauthenticated(msgInvalidToken)
	}
	if claims.Role != admintoken.RoleAdmin {
		return Grant{}, apperr.Forbidden(msgForbidden)
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time.UTC()
	}
	return Grant{valid: true, expiresAt: exp}, nil
}
