package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(New(KindNotFound, "missing")); got != KindNotFound {
		t.Errorf("KindOf = %v, want KindNotFound", got)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %v, want KindInternal", got)
	}
	if got := KindOf(nil); got != KindInternal {
		t.Errorf("KindOf(nil) = %v, want KindInternal", got)
	}

	wrapped := fmt.Errorf("outer: %w", New(KindValidation, "bad input"))
	if got := KindOf(wrapped); got != KindValidation {
		t.Errorf("KindOf(wrapped) = %v, want KindValidation", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindInternal, cause, "writing order")

	if !errors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if err.Error() != "writing order: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInsufficientBinStock, http.StatusBadRequest},
		{KindInsufficientAggregateStock, http.StatusBadRequest},
		{KindInvalidStatusTransition, http.StatusBadRequest},
		{KindInvalidBinIdentifier, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(New(tt.kind, "x")); got != tt.want {
			t.Errorf("HTTPStatus(kind %v) = %d, want %d", tt.kind, got, tt.want)
		}
	}

	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d, want 500", got)
	}
}
