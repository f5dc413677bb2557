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
	"github.com/goliatone/go-scraps/scraps"
)

// ScrapRepository is the bun-backed scraps.Repository. Every query is scoped
// by user_uid; a row belonging to another owner is indistinguishable from an
// absent row.
type ScrapRepository struct {
	db bun.IDB
}

// NewScrapRepository creates a ScrapRepository on db.
func NewScrapRepository(db bun.IDB) *ScrapRepository {
	return &ScrapRepository{db: db}
}

// Create implements scraps.Repository.
func (r *ScrapRepository) Create(ctx context.Context, scrap *models.Scrap) error {
	now := time.Now().UTC()
	scrap.UID = uuid.NewString()
	scrap.CreatedAt = now
	scrap.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(scrap).Exec(ctx); err != nil {
		return fmt.Errorf("insert scrap: %w", err)
	}
	return nil
}

// FindByOwner implements scraps.Repository, newest first.
func (r *ScrapRepository) FindByOwner(ctx context.Context, ownerUID string) ([]models.Scrap, error) {
	var list []models.Scrap
	err := r.db.NewSelect().
		Model(&list).
		Where("user_uid = ?", ownerUID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select scraps by owner: %w", err)
	}
	return list, nil
}

// FindByUIDAndOwner implements scraps.Repository.
func (r *ScrapRepository) FindByUIDAndOwner(ctx context.Context, uid, ownerUID string) (*models.Scrap, error) {
	scrap := new(models.Scrap)
	err := r.db.NewSelect().
		Model(scrap).
		Where("uid = ?", uid).
		Where("user_uid = ?", ownerUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scraps.ErrNotFound
		}
		return nil, fmt.Errorf("select scrap: %w", err)
	}
	return scrap, nil
}

// Update implements scraps.Repository. Only the mutable columns are written;
// user_uid never changes after creation.
func (r *ScrapRepository) Update(ctx context.Context, scrap *models.Scrap) error {
	scrap.UpdatedAt = time.Now().UTC()

	res, err := r.db.NewUpdate().
		Model(scrap).
		Column("title", "description", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update scrap: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return scraps.ErrNotFound
	}
	return nil
}

// Delete implements scraps.Repository.
func (r *ScrapRepository) Delete(ctx context.Context, uid, ownerUID string) error {
	res, err := r.db.NewDelete().
		Model((*models.Scrap)(nil)).
		Where("uid = ?", uid).
		Where("user_uid = ?", ownerUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete scrap: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return scraps.ErrNotFound
	}
	return nil
}

var _ scraps.Repository = (*ScrapRepository)(nil)
