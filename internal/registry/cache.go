package registry

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is the registry cache window used when none is configured.
const DefaultCacheTTL = 5 * time.Minute

// Cache holds one registry snapshot for a time-boxed window. Concurrent
// refreshes share a single fetch. A failed refresh leaves no snapshot.
type Cache struct {
	src    Source
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	group singleflight.Group

	mu       sync.RWMutex
	current  *Registry
	loadedAt time.Time
	// gen is bumped by Invalidate. A refresh stores its result only if gen
	// is unchanged since it started.
	gen uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// WithLogger attaches a logger for refresh events.
func WithLogger(l *zap.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCache creates a cache over src. A non-positive ttl uses DefaultCacheTTL.
func NewCache(src Source, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cache{
		src:    src,
		ttl:    ttl,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current registry, rebuilding it when the window expired.
func (c *Cache) Get(ctx context.Context) (*Registry, error) {
	c.mu.RLock()
	reg, loadedAt, gen := c.current, c.loadedAt, c.gen
	c.mu.RUnlock()
	if reg != nil && c.now().Sub(loadedAt) < c.ttl {
		return reg, nil
	}

	// Keyed by generation so callers after an Invalidate never join a
	// fetch that started before it.
	v, err, shared := c.group.Do("registry/"+strconv.FormatUint(gen, 10), func() (any, error) {
		return c.refresh(ctx, gen)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("registry refresh shared")
	}
	return v.(*Registry), nil
}

// Invalidate drops the current snapshot so the next Get reloads. A refresh
// already in flight is not stored.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.loadedAt = time.Time{}
	c.gen++
	c.mu.Unlock()
}

func (c *Cache) refresh(ctx context.Context, gen uint64) (*Registry, error) {
	start := c.now()
	reg, err := Load(ctx, c.src)
	if err != nil {
		c.mu.Lock()
		if c.gen == gen {
			c.current = nil
		}
		c.mu.Unlock()
		c.logger.Error("registry refresh failed", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	stale := c.gen != gen
	if !stale {
		c.current = reg
		c.loadedAt = c.now()
	}
	c.mu.Unlock()

	if stale {
		c.logger.Debug("registry refresh discarded after invalidate", zap.Int("pathways", reg.Len()))
		return reg, nil
	}
	c.logger.Info("registry refreshed",
		zap.Int("pathways", reg.Len()),
		zap.Duration("took", c.now().Sub(start)),
	)
	return reg, nil
}
