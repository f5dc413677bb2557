package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-scraps/models"
	"github.com/goliatone/go-scraps/users"
)

// UserRepository is the bun-backed users.Repository.
type UserRepository struct {
	db bun.IDB
}

// NewUserRepository creates a UserRepository on db.
func NewUserRepository(db bun.IDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create implements users.Repository. The password is expected to arrive
// already hashed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.UID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername implements users.Repository.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// Update implements users.Repository.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := r.db.NewUpdate().
		Model(user).
		Column("username", "password", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return users.ErrNotFound
	}
	return nil
}

// Delete implements users.Repository.
func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	res, err := r.db.NewDelete().
		Model((*models.User)(nil)).
		Where("uid = ?", uid).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return users.ErrNotFound
	}
	return nil
}

var _ users.Repository = (*UserRepository)(nil)
