// Package scraps implements the cache-aside access path in front of scrap
// storage: reads consult the cache first and repopulate it on miss; every
// mutation updates durable storage and then deterministically refreshes
// exactly the cache entries the read paths populate.
package scraps

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-scraps/apperr"
	"github.com/goliatone/go-scraps/cache"
	"github.com/goliatone/go-scraps/models"
)

// Service orchestrates scrap reads and writes across the durable repository
// and the cache store. The cache is never the source of truth: list entries
// are always reloaded from storage after a write rather than patched in
// place, so the cached list cannot drift from the true row set under
// concurrent writers. The single-item entry is overwritten directly because
// the write path already knows its shape.
type Service struct {
	repo   Repository
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a Service. A zero ttl falls back to cache.DefaultTTL; a
// nil logger falls back to zap.NewNop.
func NewService(repo Repository, store cache.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, store: store, ttl: ttl, logger: logger}
}

// List returns all scraps owned by ownerUID, newest first. A cached list is
// returned as-is; on miss the list is loaded from storage and the cache
// repopulated. Cache failures degrade to a miss and never fail the read.
func (s *Service) List(ctx context.Context, ownerUID string) ([]models.Scrap, error) {
	key := allKey(ownerUID)

	if data, err := s.store.Get(ctx, key); err == nil {
		var cached []models.Scrap
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
	}

	list, err := s.repo.FindByOwner(ctx, ownerUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if list == nil {
		list = []models.Scrap{}
	}

	s.populate(ctx, key, list)
	return list, nil
}

// Get returns one scrap scoped to ownerUID. A storage miss (no row, or a row
// belonging to a different owner) yields NotFound and is never cached.
func (s *Service) Get(ctx context.Context, uid, ownerUID string) (*models.Scrap, error) {
	key := oneKey(uid, ownerUID)

	if data, err := s.store.Get(ctx, key); err == nil {
		var cached models.Scrap
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
	}

	scrap, err := s.repo.FindByUIDAndOwner(ctx, uid, ownerUID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound()
		}
		return nil, apperr.Internal(err)
	}

	s.populate(ctx, key, scrap)
	return scrap, nil
}

// Create persists a new scrap for ownerUID and refreshes the owner's list
// cache from storage. The created scrap is returned with its uid and
// timestamps assigned.
func (s *Service) Create(ctx context.Context, ownerUID, title, description string) (*models.Scrap, error) {
	scrap := &models.Scrap{
		Title:       title,
		Description: description,
		UserUID:     ownerUID,
	}

	if err := s.repo.Create(ctx, scrap); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.refreshList(ctx, ownerUID); err != nil {
		return nil, err
	}
	return scrap, nil
}

// Update mutates title and description of an existing scrap scoped to
// ownerUID, then overwrites the single-item entry and reloads the list entry.
// When the scrap does not exist for this owner no cache entry is touched.
func (s *Service) Update(ctx context.Context, uid, ownerUID, title, description string) (*models.Scrap, error) {
	scrap, err := s.repo.FindByUIDAndOwner(ctx, uid, ownerUID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound()
		}
		return nil, apperr.Internal(err)
	}

	scrap.Title = title
	scrap.Description = description
	if err := s.repo.Update(ctx, scrap); err != nil {
		return nil, apperr.Internal(err)
	}

	s.populate(ctx, oneKey(uid, ownerUID), scrap)
	if err := s.refreshList(ctx, ownerUID); err != nil {
		return nil, err
	}
	return scrap, nil
}

// Delete removes a scrap scoped to ownerUID, drops its single-item entry, and
// reloads the list entry.
func (s *Service) Delete(ctx context.Context, uid, ownerUID string) error {
	if err := s.repo.Delete(ctx, uid, ownerUID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}

	if err := s.store.Del(ctx, oneKey(uid, ownerUID)); err != nil {
		s.logger.Warn("cache delete failed", zap.String("key", oneKey(uid, ownerUID)), zap.Error(err))
	}
	return s.refreshList(ctx, ownerUID)
}

// refreshList reloads the owner's full list from durable storage and
// unconditionally overwrites the list cache entry. A storage error aborts
// before any cache write so the cache is never partially updated.
func (s *Service) refreshList(ctx context.Context, ownerUID string) error {
	list, err := s.repo.FindByOwner(ctx, ownerUID)
	if err != nil {
		return apperr.Internal(err)
	}
	if list == nil {
		list = []models.Scrap{}
	}

	s.populate(ctx, allKey(ownerUID), list)
	return nil
}

// populate serializes value into the store under key. Failures are logged and
// swallowed: the row exists durably, the cache stays stale or empty until the
// next read repopulates it.
func (s *Service) populate(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.SetEx(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
