package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    *Error
		status int
		code   string
	}{
		{Validation("bad", nil), http.StatusBadRequest, CodeValidation},
		{Unauthenticated("Missing token"), http.StatusUnauthorized, CodeUnauthenticated},
		{Forbidden("Forbidden"), http.StatusForbidden, CodeForbidden},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status || tc.err.Code != tc.code {
			t.Fatalf("got %+v want status=%d code=%s", tc.err, tc.status, tc.code)
		}
	}
}

func TestAs_UnwrapsWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("ctx: %w", Forbidden("Forbidden"))
	ae, ok := As(wrapped)
	if !ok || ae.Status != http.StatusForbidden {
		t.Fatalf("As(wrapped)=(%v,%v)", ae, ok)
	}
	if !HasCode(wrapped, CodeForbidden) {
		t.Fatalf("HasCode=false")
	}
	if _, ok := As(errors.New("boom")); ok {
		t.Fatalf("plain error reported as *Error")
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	if got := (&Error{Code: "X"}).Error(); got != "X" {
		t.Fatalf("got %q", got)
	}
	var nilErr *Error
	if got := nilErr.Error(); got != "" {
		t.Fatalf("nil Error()=%q", got)
	}
}
