// Package middleware implements the pre-condition chain every route runs
// before its terminal handler: an ordered list of independent links that
// either enrich the request or short-circuit with a terminal failure.
package middleware

import (
	"context"
	"net/http"
)

// Request is the normalized, typed view of an inbound HTTP request handed to
// chain links and, after the chain succeeds, to the terminal handler. Links
// enrich it in place; a later link and the handler see the merged output of
// all earlier links.
type Request struct {
	// Header carries the raw request headers.
	Header http.Header

	// Params holds the route's path parameters by name.
	Params map[string]string

	// Body is the raw JSON request body. Nil when the request had none.
	Body []byte

	// UserUID is the authenticated caller's owner id. Written by the bearer
	// auth link; empty until that link has run.
	UserUID string
}

// Param returns the named path parameter, or "".
func (r *Request) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// Response is a terminal short-circuit result. A link returning a non-nil
// Response stops the chain; its error is rendered to the caller and no later
// link or handler executes.
type Response struct {
	Err error
}

// Link is one independent pre-condition check. Handle returns nil to continue
// to the next link, or a Response to short-circuit.
type Link interface {
	// Name identifies the link in logs.
	Name() string

	Handle(ctx context.Context, req *Request) *Response
}

// Chain executes links strictly in registration order.
type Chain struct {
	links []Link
}

// NewChain builds a chain from links. Per-route ordering is fixed by the
// caller, never inferred.
func NewChain(links ...Link) *Chain {
	return &Chain{links: links}
}

// Run executes every link in order. The first link that fails produces the
// returned Response and stops execution; nil means every pre-condition passed
// and req carries the accumulated enrichments.
func (c *Chain) Run(ctx context.Context, req *Request) *Response {
	for _, link := range c.links {
		if resp := link.Handle(ctx, req); resp != nil {
			return resp
		}
	}
	return nil
}

// LinkFunc adapts a function to the Link interface.
type LinkFunc struct {
	name string
	fn   func(ctx context.Context, req *Request) *Response
}

// NewLinkFunc creates a LinkFunc with the given name.
func NewLinkFunc(name string, fn func(ctx context.Context, req *Request) *Response) *LinkFunc {
	return &LinkFunc{name: name, fn: fn}
}

// Name returns the link name.
func (l *LinkFunc) Name() string { return l.name }

// Handle invokes the wrapped function.
func (l *LinkFunc) Handle(ctx context.Context, req *Request) *Response {
	return l.fn(ctx, req)
}
