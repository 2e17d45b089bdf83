package cli

import (
	"context"
	"errors"
	"time"

	"github.com/timohermans/rabo-overview/pkg/cache"
	"github.com/timohermans/rabo-overview/pkg/config"
	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/pipeline"
	"github.com/timohermans/rabo-overview/pkg/statement"
	"github.com/timohermans/rabo-overview/pkg/store"
)

// connectTimeout bounds a single connection attempt to MongoDB or Redis.
const connectTimeout = 10 * time.Second

// =============================================================================
// Storage
// =============================================================================

// openStore opens the configured repository. Connection failures are
// retried with backoff.
func (c *CLI) openStore(ctx context.Context) (store.Repository, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Backend != config.StorageMongo {
		return store.NewMemoryStore(), nil
	}

	var s *store.MongoStore
	err = cache.RetryWithBackoff(ctx, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		var err error
		s, err = store.NewMongoStore(attemptCtx, store.MongoOptions{
			URI:      cfg.Storage.MongoURI,
			Database: cfg.Storage.Database,
			Owner:    cfg.Owner,
		})
		if err != nil {
			c.Logger.Warn("mongodb connection failed", "err", err)
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		return nil, backendError(apperrors.ErrCodeStorage, err, "connect to mongodb")
	}
	c.Logger.Debug("connected to mongodb", "database", cfg.Storage.Database, "owner", cfg.Owner)
	return s, nil
}

// openRepository returns a fresh in-memory store holding the given
// statements, or the configured store when there are none.
func (c *CLI) openRepository(ctx context.Context, runner *pipeline.Runner, paths []string) (store.Repository, *statement.CreationReport, error) {
	if len(paths) == 0 {
		repo, err := c.openStore(ctx)
		return repo, nil, err
	}

	repo := store.NewMemoryStore()
	report, err := runner.Import(ctx, repo, paths...)
	if err != nil {
		return nil, report, err
	}
	return repo, report, nil
}

// =============================================================================
// Cache & Runner
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the configured owner.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, "owner:"+cfg.Owner+":")
	return pipeline.NewRunner(c.newCache(ctx, cfg, noCache), keyer, c.Logger), nil
}

// newCache opens the configured cache. A cache that cannot be opened is
// logged and replaced by a NullCache.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == config.CacheNone {
		return cache.NewNullCache()
	}

	backend, err := c.openCache(ctx, cfg)
	if err != nil {
		c.Logger.Warn("caching disabled", "backend", cfg.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	if ttl := cfg.Cache.TTL.Duration; ttl > 0 {
		return cache.WithTTL(backend, ttl)
	}
	return backend
}

func (c *CLI) openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Cache.Backend == config.CacheRedis {
		var rc *cache.RedisCache
		err := cache.RetryWithBackoff(ctx, func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
			defer cancel()

			var err error
			rc, err = cache.NewRedisCache(attemptCtx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
			return err
		})
		if err != nil {
			return nil, backendError(apperrors.ErrCodeCache, err, "connect to redis at %s", cfg.Cache.RedisAddr)
		}
		return rc, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "locate cache dir")
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "open cache dir %s", dir)
	}
	return fc, nil
}

// backendError wraps a connection failure with code, or with TIMEOUT when
// the attempt ran out of time.
func backendError(code apperrors.Code, err error, format string, args ...any) error {
	if errors.Is(err, context.DeadlineExceeded) {
		code = apperrors.ErrCodeTimeout
	}
	return apperrors.Wrap(code, err, format, args...)
}
