package middleware

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-scraps/apperr"
)

// Verifier validates a bearer credential and yields the caller's uid.
// Implemented by auth.TokenManager.
type Verifier interface {
	Verify(raw string) (string, error)
}

// BearerAuth verifies the Authorization header and enriches the request with
// the caller's owner id. Every verification failure is reported identically
// to a missing token so validation internals never leak.
type BearerAuth struct {
	verifier Verifier
}

// NewBearerAuth creates the bearer auth link.
func NewBearerAuth(verifier Verifier) *BearerAuth {
	return &BearerAuth{verifier: verifier}
}

// Name returns "bearer-auth".
func (l *BearerAuth) Name() string { return "bearer-auth" }

// Handle strips the "Bearer " prefix, verifies the token, and writes the
// subject uid into req.UserUID.
func (l *BearerAuth) Handle(ctx context.Context, req *Request) *Response {
	raw := req.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer"))
	if token == "" {
		return &Response{Err: apperr.Unauthenticated()}
	}

	uid, err := l.verifier.Verify(token)
	if err != nil {
		return &Response{Err: apperr.Unauthenticated()}
	}

	req.UserUID = uid
	return nil
}

// RequireFields checks the JSON body for the presence of each configured
// field, in order, and fails on the first one that is absent, null, or an
// empty string.
type RequireFields struct {
	fields []string
}

// NewRequireFields creates the required-fields link. Field order determines
// which missing field is reported first.
func NewRequireFields(fields ...string) *RequireFields {
	return &RequireFields{fields: fields}
}

// Name returns "require-fields".
func (l *RequireFields) Name() string { return "require-fields" }

// Handle decodes the body shallowly and validates field presence.
func (l *RequireFields) Handle(ctx context.Context, req *Request) *Response {
	var body map[string]json.RawMessage
	if len(req.Body) > 0 {
		if err := json.Unmarshal(req.Body, &body); err != nil {
			body = nil
		}
	}

	for _, field := range l.fields {
		raw, ok := body[field]
		if !ok || isEmptyValue(raw) {
			return &Response{Err: apperr.MissingParam(field)}
		}
	}
	return nil
}

func isEmptyValue(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""`
}

// UUIDParam checks that a path parameter is a well-formed UUID.
type UUIDParam struct {
	param string
}

// NewUUIDParam creates the identifier-format link for the named path param.
func NewUUIDParam(param string) *UUIDParam {
	return &UUIDParam{param: param}
}

// Name returns "uuid-param".
func (l *UUIDParam) Name() string { return "uuid-param" }

// canonicalUUIDLen is the length of the dashed 36-character form. The uuid
// package also parses urn:uuid:, braced, and undashed encodings; only the
// canonical form is a valid path parameter here.
const canonicalUUIDLen = 36

// Handle validates the parameter's textual format only; existence checks
// belong to the handler.
func (l *UUIDParam) Handle(ctx context.Context, req *Request) *Response {
	value := req.Param(l.param)
	if len(value) != canonicalUUIDLen {
		return &Response{Err: apperr.InvalidParam(l.param)}
	}
	if _, err := uuid.Parse(value); err != nil {
		return &Response{Err: apperr.InvalidParam(l.param)}
	}
	return nil
}
