// Package rest exposes the HTTP surface: route registration, the adapter that
// normalizes inbound requests for the middleware chain, and JSON rendering of
// results and classified failures.
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-scraps/apperr"
	"github.com/goliatone/go-scraps/middleware"
	"github.com/goliatone/go-scraps/scraps"
	"github.com/goliatone/go-scraps/users"
)

// DefaultRequestTimeout bounds a single request's work when the config does
// not say otherwise.
const DefaultRequestTimeout = 10 * time.Second

// Handler owns the route table. Each route pairs a middleware chain with a
// terminal handler; the chain must pass before the handler runs.
type Handler struct {
	scraps   *scraps.Service
	users    *users.Service
	verifier middleware.Verifier
	timeout  time.Duration
	logger   *zap.Logger
}

// NewHandler creates the REST handler. A zero timeout falls back to
// DefaultRequestTimeout; a nil logger falls back to zap.NewNop.
func NewHandler(scrapSvc *scraps.Service, userSvc *users.Service, verifier middleware.Verifier, timeout time.Duration, logger *zap.Logger) *Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		scraps:   scrapSvc,
		users:    userSvc,
		verifier: verifier,
		timeout:  timeout,
		logger:   logger,
	}
}

// Router builds the route table. Chains are fixed per route; ordering inside a
// chain is load-bearing (auth before validation).
func (h *Handler) Router() *http.ServeMux {
	authed := middleware.NewBearerAuth(h.verifier)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.welcome)

	mux.Handle("POST /users", h.route(
		middleware.NewChain(middleware.NewRequireFields("username", "password")),
		nil, h.registerUser))
	mux.Handle("GET /users/{username}", h.route(
		middleware.NewChain(),
		[]string{"username"}, h.usernameAvailable))
	mux.Handle("POST /auth", h.route(
		middleware.NewChain(middleware.NewRequireFields("username", "password")),
		nil, h.authenticate))

	mux.Handle("GET /scraps", h.route(
		middleware.NewChain(authed),
		nil, h.listScraps))
	mux.Handle("GET /scraps/{uid}", h.route(
		middleware.NewChain(authed, middleware.NewUUIDParam("uid")),
		[]string{"uid"}, h.showScrap))
	mux.Handle("POST /scraps", h.route(
		middleware.NewChain(authed, middleware.NewRequireFields("title", "description")),
		nil, h.createScrap))
	mux.Handle("PUT /scraps/{uid}", h.route(
		middleware.NewChain(authed, middleware.NewRequireFields("title", "description"), middleware.NewUUIDParam("uid")),
		[]string{"uid"}, h.updateScrap))
	mux.Handle("DELETE /scraps/{uid}", h.route(
		middleware.NewChain(authed, middleware.NewUUIDParam("uid")),
		[]string{"uid"}, h.deleteScrap))

	return mux
}

// handlerFunc is a terminal route handler. It runs only after the route's
// chain passed; the returned value is rendered as the 200 response body.
type handlerFunc func(ctx context.Context, req *middleware.Request) (any, error)

// route adapts an http.Request into a middleware.Request, applies the
// per-request deadline, runs the chain, and dispatches to fn.
func (h *Handler) route(chain *middleware.Chain, params []string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.writeError(w, r, apperr.Internal(err))
			return
		}

		req := &middleware.Request{
			Header: r.Header,
			Params: make(map[string]string, len(params)),
			Body:   body,
		}
		for _, name := range params {
			req.Params[name] = r.PathValue(name)
		}

		if resp := chain.Run(ctx, req); resp != nil {
			h.writeError(w, r, resp.Err)
			return
		}

		out, err := fn(ctx, req)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the API!"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response encode failed", zap.Error(err))
	}
}

// writeError renders the classified failure. Internal causes reach the log,
// never the wire.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": apperr.Message(err)})
}
