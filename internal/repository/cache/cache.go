// Package cache is the best-effort result cache: an in-process expirable LRU
// hot tier in front of the shared Redis tier. A failing Redis never fails the
// calling operation; lookups degrade to a miss.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/arthaset/fundex/internal/db"
	"github.com/arthaset/fundex/internal/domain"
	"github.com/arthaset/fundex/internal/domain/search/result"
)

// kvStore is the consumer interface for cache storage (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache implements the search engine's ResultCache contract.
type Cache struct {
	kv     kvStore
	local  *expirable.LRU[string, []result.Result]
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a two-tier result cache. localSize bounds the hot tier entries;
// ttl applies to both tiers.
func New(kv kvStore, ttl time.Duration, localSize int, logger *zap.Logger) *Cache {
	return &Cache{
		kv:     kv,
		local:  expirable.NewLRU[string, []result.Result](localSize, nil, ttl),
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached result list for key. Callers must treat the returned
// slice as immutable.
func (c *Cache) Get(ctx context.Context, key string) ([]result.Result, bool) {
	if results, ok := c.local.Get(key); ok {
		return results, true
	}

	data, err := c.kv.Get(ctx, domain.CacheKeyPrefix+key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("result cache unavailable, bypassing",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	results, err := unmarshalResults(data)
	if err != nil {
		c.logger.Warn("discarding undecodable cache entry",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}

	c.local.Add(key, results)
	return results, true
}

// Set stores a result list under key in both tiers. Failures are logged, never
// returned: a cache write must not fail the search that produced the results.
func (c *Cache) Set(ctx context.Context, key string, results []result.Result) {
	c.local.Add(key, results)

	data, err := marshalResults(results)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.kv.SetWithTTL(ctx, domain.CacheKeyPrefix+key, data, c.ttl); err != nil {
		c.logger.Warn("result cache write failed",
			zap.String("key", key), zap.Error(err))
	}
}
