package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-scraps/apperr"
)

type fakeVerifier struct {
	uid   string
	err   error
	seen  string
	calls int
}

func (v *fakeVerifier) Verify(raw string) (string, error) {
	v.calls++
	v.seen = raw
	return v.uid, v.err
}

func TestBearerAuthSuccess(t *testing.T) {
	verifier := &fakeVerifier{uid: "u1"}
	link := NewBearerAuth(verifier)

	req := &Request{Header: http.Header{"Authorization": {"Bearer  token-abc "}}}
	if resp := link.Handle(context.Background(), req); resp != nil {
		t.Fatalf("unexpected failure: %v", resp.Err)
	}

	if verifier.seen != "token-abc" {
		t.Errorf("verifier received %q, want prefix and whitespace stripped", verifier.seen)
	}
	if req.UserUID != "u1" {
		t.Errorf("UserUID = %q, want %q", req.UserUID, "u1")
	}
}

func TestBearerAuthFailures(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		err    error
	}{
		{"no header", http.Header{}, nil},
		{"prefix only", http.Header{"Authorization": {"Bearer "}}, nil},
		{"verification fails", http.Header{"Authorization": {"Bearer bad"}}, errors.New("bad signature")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := NewBearerAuth(&fakeVerifier{err: tt.err})
			req := &Request{Header: tt.header}

			resp := link.Handle(context.Background(), req)
			if resp == nil {
				t.Fatal("expected unauthenticated failure")
			}
			// A missing token and a rejected token must be indistinguishable.
			if apperr.Message(resp.Err) != "you must authenticate first" {
				t.Errorf("message = %q", apperr.Message(resp.Err))
			}
			if req.UserUID != "" {
				t.Errorf("UserUID = %q, want empty on failure", req.UserUID)
			}
		})
	}
}

func TestRequireFields(t *testing.T) {
	link := NewRequireFields("title", "description")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"all present", `{"title":"t","description":"d"}`, ""},
		{"missing first", `{"description":"d"}`, "Missing param: title"},
		{"missing second", `{"title":"t"}`, "Missing param: description"},
		{"empty string", `{"title":"","description":"d"}`, "Missing param: title"},
		{"null value", `{"title":null,"description":"d"}`, "Missing param: title"},
		{"empty body", ``, "Missing param: title"},
		{"not an object", `[1,2]`, "Missing param: title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Body: []byte(tt.body)}
			resp := link.Handle(context.Background(), req)

			if tt.wantErr == "" {
				if resp != nil {
					t.Fatalf("unexpected failure: %v", resp.Err)
				}
				return
			}
			if resp == nil {
				t.Fatal("expected failure")
			}
			if got := apperr.Message(resp.Err); got != tt.wantErr {
				t.Errorf("message = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestRequireFieldsReportsFirstMissingField(t *testing.T) {
	link := NewRequireFields("username", "password")
	resp := link.Handle(context.Background(), &Request{Body: []byte(`{}`)})

	if resp == nil || apperr.Message(resp.Err) != "Missing param: username" {
		t.Fatalf("resp = %v, want the first configured field reported", resp)
	}
}

func TestUUIDParam(t *testing.T) {
	link := NewUUIDParam("uid")

	valid := uuid.NewString()
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", valid, true},
		{"empty", "", false},
		{"garbage", "not-a-uuid", false},
		{"truncated", valid[:20], false},
		// alternate encodings the uuid package can parse but the route
		// contract rejects
		{"urn form", "urn:uuid:" + valid, false},
		{"braced", "{" + valid + "}", false},
		{"no dashes", strings.ReplaceAll(valid, "-", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Params: map[string]string{"uid": tt.value}}
			resp := link.Handle(context.Background(), req)

			if tt.ok && resp != nil {
				t.Fatalf("unexpected failure: %v", resp.Err)
			}
			if !tt.ok {
				if resp == nil {
					t.Fatal("expected failure")
				}
				if got := apperr.Message(resp.Err); got != "Invalid param: uid" {
					t.Errorf("message = %q", got)
				}
			}
		})
	}
}
