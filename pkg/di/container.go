// Package di wires the application graph: storage, cache backend, token
// manager, domain services, and the REST handler. It manages singleton
// instances so every consumer shares the same handles; lifecycle (Close)
// is owned by the process entry point.
package di

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/goliatone/go-scraps/auth"
	"github.com/goliatone/go-scraps/cache"
	"github.com/goliatone/go-scraps/config"
	"github.com/goliatone/go-scraps/internal/cacheinfra"
	"github.com/goliatone/go-scraps/internal/storage"
	"github.com/goliatone/go-scraps/rest"
	"github.com/goliatone/go-scraps/scraps"
	"github.com/goliatone/go-scraps/users"
)

// Container provides dependency injection for the whole service.
type Container struct {
	cfg    config.Config
	logger *zap.Logger

	db          *bun.DB
	redisClient *redis.Client
	store       cache.Store
	tokens      *auth.TokenManager
	scrapSvc    *scraps.Service
	userSvc     *users.Service
	handler     *rest.Handler
}

// NewContainer builds the graph from cfg. The database handle and redis
// client are created here but do not touch the network until first use.
func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{cfg: cfg, logger: logger}

	// the cache backend can fail on a bad config; build it before opening
	// handles that would need closing on the error path
	store, client, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	c.store = store
	c.redisClient = client

	c.db = storage.OpenPostgres(cfg.DatabaseURL)

	c.tokens = auth.NewTokenManager(auth.Config{
		Secret:   []byte(cfg.JWTSecret),
		Lifetime: cfg.TokenLifetime.Duration,
	})

	c.scrapSvc = scraps.NewService(
		storage.NewScrapRepository(c.db),
		c.store,
		cfg.CacheTTL.Duration,
		logger.Named("scraps"),
	)
	c.userSvc = users.NewService(storage.NewUserRepository(c.db), c.tokens)

	c.handler = rest.NewHandler(
		c.scrapSvc,
		c.userSvc,
		c.tokens,
		cfg.RequestTimeout.Duration,
		logger.Named("rest"),
	)
	return c, nil
}

// newStore builds the configured cache backend. For the memory backend the
// pipeline's TTL is pinned at construction.
func newStore(cfg config.Config) (cache.Store, *redis.Client, error) {
	switch cfg.CacheBackend {
	case config.BackendRedis:
		opts, err := redisOptions(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opts)
		return cacheinfra.NewRedisStore(client), client, nil

	case config.BackendMemory:
		infra := cacheinfra.DefaultConfig()
		if cfg.CacheTTL.Duration > 0 {
			infra.TTL = cfg.CacheTTL.Duration
		}
		store, err := cacheinfra.NewMemoryStore(infra)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// redisOptions accepts both redis:// URLs and bare host:port addresses.
func redisOptions(url string) (*redis.Options, error) {
	if strings.Contains(url, "://") {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: url}, nil
}

// Config returns a copy of the configuration the container was built from.
func (c *Container) Config() config.Config { return c.cfg }

// DB returns the singleton database handle.
func (c *Container) DB() *bun.DB { return c.db }

// Store returns the singleton cache store.
func (c *Container) Store() cache.Store { return c.store }

// TokenManager returns the singleton token manager.
func (c *Container) TokenManager() *auth.TokenManager { return c.tokens }

// ScrapService returns the singleton scrap service.
func (c *Container) ScrapService() *scraps.Service { return c.scrapSvc }

// UserService returns the singleton user service.
func (c *Container) UserService() *users.Service { return c.userSvc }

// Handler returns the singleton REST handler.
func (c *Container) Handler() *rest.Handler { return c.handler }

// Close releases the database and redis handles.
func (c *Container) Close() error {
	var firstErr error
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			firstErr = err
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
