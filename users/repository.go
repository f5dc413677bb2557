package users

import (
	"context"
	"errors"

	"github.com/goliatone/go-scraps/models"
)

// ErrNotFound is returned by repositories when no user matches the lookup.
var ErrNotFound = errors.New("users: not found")

// Repository is the durable storage collaborator for user accounts.
type Repository interface {
	// Create persists a new user, assigning its uid and timestamps. The
	// password must already be hashed by the caller.
	Create(ctx context.Context, user *models.User) error

	// FindByUsername returns one user, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update persists username and password of an existing user, or returns
	// ErrNotFound.
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user by uid, or returns ErrNotFound.
	Delete(ctx context.Context, uid string) error
}
