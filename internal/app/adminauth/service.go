// Package adminauth authenticates the single site admin and gates admin-only operations.
package adminauth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/need-mission/site-api/internal/app/apperr"
	"github.com/need-mission/site-api/internal/platform/auth/admintoken"
	"github.com/need-mission/site-api/internal/platform/config"
)

// TokenTTL is how long an issued admin credential stays valid. There is no refresh or
// revocation; expiry is the only way a credential stops working.
const TokenTTL = 2 * time.Hour

const msgInvalidCredentials = "Invalid credentials"

// Credential is a signed admin token and its expiry.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	identity config.AdminIdentity
	codec    *admintoken.Codec
}

func NewService(identity config.AdminIdentity, codec *admintoken.Codec) *Service {
	return &Service{identity: identity, codec: codec}
}

// Login checks email and password against the configured admin identity.
// Every failure returns the same error so callers cannot tell which field was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (Credential, error) {
	_ = ctx
	if email == "" || password == "" {
		return Credential{}, apperr.Unauthenticated(msgInvalidCredentials)
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.identity.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.identity.Password)) == 1
	if !emailOK || !passOK {
		return Credential{}, apperr.Unauthenticated(msgInvalidCredentials)
	}

	tok, exp, err := s.codec.Issue(admintoken.RoleAdmin)
	if err != nil {
		return Credential{}, fmt.Errorf("issue admin credential: %w", err)
	}
	return Credential{Token: tok, ExpiresAt: exp}, nil
}
