package admintoken

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time         { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCodec_IssueThenParse(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	c := NewWithOptions("secret", 2*time.Hour, clk)

	tok, exp, err := c.Issue(RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := time.Unix(1700000000+7200, 0).UTC(); !exp.Equal(want) {
		t.Fatalf("expiresAt=%v want %v", exp, want)
	}

	claims, err := c.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("role=%q", claims.Role)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Unix() != 1700000000+7200 {
		t.Fatalf("exp=%v", claims.ExpiresAt)
	}
}

func TestCodec_Parse_Expired(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	c := NewWithOptions("secret", 2*time.Hour, clk)
	tok, _, err := c.Issue(RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clk.Advance(2*time.Hour - time.Second)
	if _, err := c.Parse(tok); err != nil {
		t.Fatalf("Parse just before expiry: %v", err)
	}
	clk.Advance(2 * time.Second)
	if _, err := c.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse after expiry err=%v, want ErrInvalidToken", err)
	}
}

func TestCodec_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	tok, _, err := NewWithOptions("secret-a", time.Hour, clk).Issue(RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewWithOptions("secret-b", time.Hour, clk).Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v, want ErrInvalidToken", err)
	}
}

func TestCodec_Parse_RejectsNoneAndOtherAlgs(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	c := NewWithOptions("secret", time.Hour, clk)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clk.now.Add(time.Hour))},
		Role:             RoleAdmin,
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := c.Parse(none); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("alg=none accepted: err=%v", err)
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	if _, err := c.Parse(hs512); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("alg=HS512 accepted: err=%v", err)
	}
}

func TestCodec_Parse_RequiresExpiry(t *testing.T) {
	t.Parallel()

	c := NewWithOptions("secret", time.Hour, &fakeClock{now: time.Unix(1700000000, 0)})
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: RoleAdmin}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := c.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token without exp accepted: err=%v", err)
	}
}

func TestCodec_Parse_Garbage(t *testing.T) {
	t.Parallel()

	c := New("secret", time.Hour)
	for _, tok := range []string{"", "abc", strings.Repeat("x.", 2) + "y"} {
		if _, err := c.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Parse(%q) err=%v", tok, err)
		}
	}
}

func TestCodec_Issue_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, _, err := New("", time.Hour).Issue(RoleAdmin); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
