// Package testsupport provides the shared fakes and file helpers used across
// the test suites: an in-memory cache store and repositories that record
// their call sequences so tests can assert on cache-aside behavior.
package testsupport

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-scraps/cache"
	"github.com/goliatone/go-scraps/models"
	"github.com/goliatone/go-scraps/scraps"
	"github.com/goliatone/go-scraps/users"
)

// CacheStore is an in-memory cache.Store that records every call and supports
// per-operation error injection.
type CacheStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	calls []string

	GetErr error
	SetErr error
	DelErr error
}

// NewCacheStore creates an empty fake store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

// Get implements cache.Store.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "get "+key)

	if s.GetErr != nil {
		return nil, s.GetErr
	}
	data, ok := s.entries[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// SetEx implements cache.Store.
func (s *CacheStore) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "set "+key)

	if s.SetErr != nil {
		return s.SetErr
	}
	s.entries[key] = append([]byte(nil), value...)
	s.ttls[key] = ttl
	return nil
}

// Del implements cache.Store.
func (s *CacheStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "del "+key)

	if s.DelErr != nil {
		return s.DelErr
	}
	delete(s.entries, key)
	delete(s.ttls, key)
	return nil
}

// Entry returns the stored bytes for key, if any.
func (s *CacheStore) Entry(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	return data, ok
}

// TTL returns the ttl the last SetEx recorded for key.
func (s *CacheStore) TTL(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ttl, ok := s.ttls[key]
	return ttl, ok
}

// Calls returns the recorded call sequence.
func (s *CacheStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// ResetCalls clears the recorded call sequence, keeping entries.
func (s *CacheStore) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// ScrapRepo is an in-memory scraps.Repository that records calls. Creation
// order drives the created_at timestamps so FindByOwner ordering is
// deterministic.
type ScrapRepo struct {
	mu     sync.Mutex
	byUID  map[string]models.Scrap
	seq    int
	calls  []string
	Fail   error // when set, every operation fails with it
	NextTS time.Time
}

// NewScrapRepo creates an empty fake repository.
func NewScrapRepo() *ScrapRepo {
	return &ScrapRepo{
		byUID:  make(map[string]models.Scrap),
		NextTS: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *ScrapRepo) record(call string) {
	r.calls = append(r.calls, call)
}

// Calls returns the recorded call sequence.
func (r *ScrapRepo) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// ResetCalls clears the recorded call sequence, keeping rows.
func (r *ScrapRepo) ResetCalls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Create implements scraps.Repository.
func (r *ScrapRepo) Create(ctx context.Context, scrap *models.Scrap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("create")

	if r.Fail != nil {
		return r.Fail
	}
	r.seq++
	scrap.UID = uuid.NewString()
	scrap.CreatedAt = r.NextTS.Add(time.Duration(r.seq) * time.Second)
	scrap.UpdatedAt = scrap.CreatedAt
	r.byUID[scrap.UID] = *scrap
	return nil
}

// FindByOwner implements scraps.Repository.
func (r *ScrapRepo) FindByOwner(ctx context.Context, ownerUID string) ([]models.Scrap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("findByOwner " + ownerUID)

	if r.Fail != nil {
		return nil, r.Fail
	}
	var out []models.Scrap
	for _, s := range r.byUID {
		if s.UserUID == ownerUID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// FindByUIDAndOwner implements scraps.Repository.
func (r *ScrapRepo) FindByUIDAndOwner(ctx context.Context, uid, ownerUID string) (*models.Scrap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("findByUIDAndOwner " + uid)

	if r.Fail != nil {
		return nil, r.Fail
	}
	s, ok := r.byUID[uid]
	if !ok || s.UserUID != ownerUID {
		return nil, scraps.ErrNotFound
	}
	out := s
	return &out, nil
}

// Update implements scraps.Repository.
func (r *ScrapRepo) Update(ctx context.Context, scrap *models.Scrap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("update " + scrap.UID)

	if r.Fail != nil {
		return r.Fail
	}
	existing, ok := r.byUID[scrap.UID]
	if !ok {
		return scraps.ErrNotFound
	}
	existing.Title = scrap.Title
	existing.Description = scrap.Description
	r.seq++
	existing.UpdatedAt = r.NextTS.Add(time.Duration(r.seq) * time.Second)
	r.byUID[scrap.UID] = existing
	scrap.UpdatedAt = existing.UpdatedAt
	return nil
}

// Delete implements scraps.Repository.
func (r *ScrapRepo) Delete(ctx context.Context, uid, ownerUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("delete " + uid)

	if r.Fail != nil {
		return r.Fail
	}
	s, ok := r.byUID[uid]
	if !ok || s.UserUID != ownerUID {
		return scraps.ErrNotFound
	}
	delete(r.byUID, uid)
	return nil
}

// UserRepo is an in-memory users.Repository.
type UserRepo struct {
	mu    sync.Mutex
	byUID map[string]models.User
	Fail  error
}

// NewUserRepo creates an empty fake user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{byUID: make(map[string]models.User)}
}

// Create implements users.Repository.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	user.UID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byUID[user.UID] = *user
	return nil
}

// FindByUsername implements users.Repository.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return nil, r.Fail
	}
	for _, u := range r.byUID {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, users.ErrNotFound
}

// Update implements users.Repository.
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	existing, ok := r.byUID[user.UID]
	if !ok {
		return users.ErrNotFound
	}
	existing.Username = user.Username
	existing.Password = user.Password
	existing.UpdatedAt = time.Now().UTC()
	r.byUID[user.UID] = existing
	return nil
}

// Delete implements users.Repository.
func (r *UserRepo) Delete(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	if _, ok := r.byUID[uid]; !ok {
		return users.ErrNotFound
	}
	delete(r.byUID, uid)
	return nil
}
