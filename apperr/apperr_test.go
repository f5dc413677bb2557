package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", Unauthenticated(), http.StatusUnauthorized},
		{"missing param", MissingParam("title"), http.StatusBadRequest},
		{"invalid param", InvalidParam("uid"), http.StatusBadRequest},
		{"not found", NotFound(), http.StatusNotFound},
		{"conflict", Conflict("Username"), http.StatusConflict},
		{"forbidden", Forbidden(), http.StatusForbidden},
		{"internal", Internal(errors.New("pg down")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{Unauthenticated(), "you must authenticate first"},
		{MissingParam("description"), "Missing param: description"},
		{InvalidParam("uid"), "Invalid param: uid"},
		{NotFound(), "Data not found"},
		{Conflict("Username"), "Username already exists"},
		{Internal(errors.New("connection refused")), "internal server error"},
		{errors.New("raw driver error"), "internal server error"},
	}

	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestInternalRetainsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Internal(cause)

	if !errors.Is(err, cause) {
		t.Error("expected Internal error to wrap its cause")
	}

	// The cause must show up in logs but never in the client message.
	if Message(err) != "internal server error" {
		t.Errorf("client message leaked: %q", Message(err))
	}
	if err.Error() == Message(err) {
		t.Error("expected Error() to include the cause for server-side logs")
	}
}

func TestWrappedClassificationSurvives(t *testing.T) {
	err := fmt.Errorf("list scraps: %w", NotFound())

	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", KindOf(err))
	}
	if Status(err) != http.StatusNotFound {
		t.Errorf("Status(wrapped) = %d, want 404", Status(err))
	}
}
