package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-scraps/cache"
)

// MemoryStore is an in-process cache.Store backed by a sturdyc client. It
// exists for single-node deployments and tests, where a Redis round-trip
// buys nothing.
//
// sturdyc applies one TTL to the whole client, which matches the pipeline's
// fixed-TTL contract: the store is constructed with that TTL and SetEx keeps
// the ttl parameter for interface compatibility only.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]
	ttl    time.Duration
}

// NewMemoryStore creates a MemoryStore from cfg.
func NewMemoryStore(cfg Config) (*MemoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage)
	return &MemoryStore{client: client, ttl: cfg.TTL}, nil
}

// Get implements cache.Store.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.client.Get(key)
	if !ok {
		return nil, cache.ErrNotFound
	}
	return data, nil
}

// SetEx implements cache.Store. The entry expires after the store's
// configured TTL.
func (s *MemoryStore) SetEx(ctx context.Context, key string, value []byte, _ time.Duration) error {
	s.client.Set(key, value)
	return nil
}

// Del implements cache.Store.
func (s *MemoryStore) Del(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

var _ cache.Store = (*MemoryStore)(nil)
