package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.InvalidCredentials("token expired", nil), http.StatusUnauthorized},
		{apperr.Unauthenticated("Incorrect username or password"), http.StatusUnauthorized},
		{apperr.Forbidden("Not allowed"), http.StatusForbidden},
		{apperr.NotFound("Order not found"), http.StatusNotFound},
		{apperr.Conflict("User with the email already exists"), http.StatusConflict},
		{apperr.Validation("The quantity field is required."), http.StatusUnprocessableEntity},
		{apperr.InvalidTransition("DELIVERED", "PENDING"), http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := apperr.Status(c.err); got != c.want {
			t.Errorf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestCredentialFailuresShareOneDetail(t *testing.T) {
	reasons := []string{"token expired", "signature mismatch", "malformed token", "missing exp claim"}
	for _, reason := range reasons {
		err := apperr.InvalidCredentials(reason, nil)
		if apperr.Detail(err) != "Could not validate credentials" {
			t.Errorf("detail for %q = %q", reason, apperr.Detail(err))
		}
		if apperr.Reason(err) != reason {
			t.Errorf("reason lost: got %q, want %q", apperr.Reason(err), reason)
		}
	}
}

func TestForeignErrorsNeverLeak(t *testing.T) {
	err := fmt.Errorf("pq: connection refused")
	if apperr.Detail(err) != "Internal Server Error" {
		t.Errorf("foreign error leaked: %q", apperr.Detail(err))
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		t.Errorf("foreign error classified: %v", apperr.KindOf(err))
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	inner := apperr.NotFound("Order not found")
	wrapped := fmt.Errorf("service: %w", inner)

	if !apperr.Is(wrapped, apperr.KindNotFound) {
		t.Error("kind lost through wrapping")
	}
	if apperr.Detail(wrapped) != "Order not found" {
		t.Errorf("detail lost through wrapping: %q", apperr.Detail(wrapped))
	}
}
