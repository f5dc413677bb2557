package rest

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-scraps/apperr"
	"github.com/goliatone/go-scraps/middleware"
)

type scrapInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) listScraps(ctx context.Context, req *middleware.Request) (any, error) {
	list, err := h.scraps.List(ctx, req.UserUID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"scraps": list}, nil
}

func (h *Handler) showScrap(ctx context.Context, req *middleware.Request) (any, error) {
	scrap, err := h.scraps.Get(ctx, req.Param("uid"), req.UserUID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"scrap": scrap}, nil
}

func (h *Handler) createScrap(ctx context.Context, req *middleware.Request) (any, error) {
	var in scrapInput
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, apperr.MissingParam("title")
	}

	scrap, err := h.scraps.Create(ctx, req.UserUID, in.Title, in.Description)
	if err != nil {
		return nil, err
	}
	return map[string]any{"scrap": scrap}, nil
}

func (h *Handler) updateScrap(ctx context.Context, req *middleware.Request) (any, error) {
	var in scrapInput
	if err := json.Unmarshal(req.Body, &in); err != nil {
		return nil, apperr.MissingParam("title")
	}

	scrap, err := h.scraps.Update(ctx, req.Param("uid"), req.UserUID, in.Title, in.Description)
	if err != nil {
		return nil, err
	}
	return map[string]any{"scrap": scrap}, nil
}

func (h *Handler) deleteScrap(ctx context.Context, req *middleware.Request) (any, error) {
	if err := h.scraps.Delete(ctx, req.Param("uid"), req.UserUID); err != nil {
		return nil, err
	}
	return map[string]any{}, nil
}
