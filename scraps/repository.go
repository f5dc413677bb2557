package scraps

import (
	"context"
	"errors"

	"github.com/goliatone/go-scraps/models"
)

// ErrNotFound is returned by repositories when no scrap matches the lookup,
// including the case where the row exists but belongs to a different owner.
var ErrNotFound = errors.New("scraps: not found")

// Repository is the durable storage collaborator for scraps. Every lookup and
// mutation is scoped to an owner; implementations must never return or touch
// a row whose user_uid differs from the one given.
type Repository interface {
	// Create persists a new scrap, assigning its uid and timestamps.
	Create(ctx context.Context, scrap *models.Scrap) error

	// FindByOwner returns all scraps for an owner, newest first.
	FindByOwner(ctx context.Context, ownerUID string) ([]models.Scrap, error)

	// FindByUIDAndOwner returns one scrap, or ErrNotFound.
	FindByUIDAndOwner(ctx context.Context, uid, ownerUID string) (*models.Scrap, error)

	// Update persists the mutable fields of an existing scrap and bumps its
	// updated_at timestamp.
	Update(ctx context.Context, scrap *models.Scrap) error

	// Delete removes one scrap, or returns ErrNotFound.
	Delete(ctx context.Context, uid, ownerUID string) error
}
