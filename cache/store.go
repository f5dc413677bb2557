package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the key/value cache contract the scrap pipeline depends on.
// Values are opaque byte slices, immutable after write and always fully
// replaced, so no read-modify-write atomicity is required of backends.
//
// Contract:
//   - Get returns ErrNotFound for an absent key. Any other error means the
//     backend itself failed; callers on the read path treat that the same as
//     a miss to keep reads available.
//   - SetEx and Del failures are non-fatal to callers: the durable row still
//     exists, the cache simply stays stale or empty until the next read
//     repopulates it.
//   - Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// DefaultTTL is the fixed expiry applied to every entry the scrap pipeline
// writes. Eviction is expiry-only; there is no LRU and no size bound in the
// contract.
const DefaultTTL = 60 * time.Second
