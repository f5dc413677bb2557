package rest

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-scraps/apperr"
	"github.com/goliatone/go-scraps/middleware"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) registerUser(ctx context.Context, req *middleware.Request) (any, error) {
	var in credentials
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, apperr.MissingParam("username")
	}

	user, err := h.users.Register(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	// the created user is the body itself, unenveloped; the scrap routes wrap
	// theirs
	return user, nil
}

// usernameAvailable answers the pre-registration availability probe: an empty
// object when the name is free, Conflict when taken.
func (h *Handler) usernameAvailable(ctx context.Context, req *middleware.Request) (any, error) {
	if err := h.users.Available(ctx, req.Param("username")); err != nil {
		return nil, err
	}
	return map[string]any{}, nil
}

func (h *Handler) authenticate(ctx context.Context, req *middleware.Request) (any, error) {
	var in credentials
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, apperr.MissingParam("username")
	}

	token, err := h.users.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	return map[string]string{"token": token}, nil
}
