package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestHTTPStatusCodes(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{AuthenticationRequired(""), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{Validation("status", "invalid"), http.StatusBadRequest},
		{NotFound(""), http.StatusNotFound},
		{MethodNotAllowed(""), http.StatusMethodNotAllowed},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatusCode(); got != tc.want {
			t.Fatalf("kind %d: got status %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestFromMapsRecordNotFound(t *testing.T) {
	ae := From(fmt.Errorf("load offer: %w", gorm.ErrRecordNotFound))
	if ae.Kind != KindNotFound {
		t.Fatalf("expected KindNotFound, got %d", ae.Kind)
	}
}

func TestFromPassesThroughTypedErrors(t *testing.T) {
	orig := Forbidden("nope")
	ae := From(fmt.Errorf("wrapped: %w", orig))
	if ae != orig {
		t.Fatalf("expected the original *Error back, got %+v", ae)
	}
}

func TestFromWrapsUnknownAsInternal(t *testing.T) {
	ae := From(errors.New("disk on fire"))
	if ae.Kind != KindInternal {
		t.Fatalf("expected KindInternal, got %d", ae.Kind)
	}
}

func TestValidationErrorMessageNamesFields(t *testing.T) {
	err := ValidationMap(map[string][]string{
		"details": {"An offer must contain at least 3 details."},
	})
	want := "validation failed: details: An offer must contain at least 3 details."
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
