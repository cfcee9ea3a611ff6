package cache

import (
	"context"

	"campaign-backend/pkg/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source is the raw analytical backend contract the cached client wraps.
// Implementations may fail with network, authorization, or malformed-query
// errors; the client treats every failure the same way: propagate, never
// cache.
type Source interface {
	Query(ctx context.Context, customerID, category string, params interface{}) (interface{}, error)
}

// Client is a caching façade over a Source. It exposes the same Query
// contract, so callers can swap it for the raw client or a test double.
//
// Read path: cache hit returns immediately; on a miss, concurrent callers
// for the same key are coalesced into a single backend call and all receive
// its outcome. Successful results are stored with the category's TTL; errors
// are returned to every waiter and never stored, so a transient backend
// failure cannot poison the TTL window. If the key cannot be built the
// client fails open and queries the backend directly.
type Client struct {
	source  Source
	store   *Store
	keys    *KeyBuilder
	group   singleflight.Group
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewClient creates a cached query client. metrics may be nil.
func NewClient(source Source, store *Store, keys *KeyBuilder, metrics *observability.Collector, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		source:  source,
		store:   store,
		keys:    keys,
		metrics: metrics,
		logger:  logger,
	}
}

// Query returns the cached value for (customerID, category, params) or, on a
// miss, the result of exactly one backend call shared by all concurrent
// callers of the same key.
func (c *Client) Query(ctx context.Context, customerID, category string, params interface{}) (interface{}, error) {
	key, err := c.keys.BuildKey(customerID, category, params)
	if err != nil {
		// Fail open: a key we cannot build means a query we cannot cache,
		// not a request we should refuse.
		c.logger.Warn("Bypassing cache, key build failed",
			zap.String("customerID", customerID),
			zap.String("category", category),
			zap.Error(err),
		)
		return c.source.Query(ctx, customerID, category, params)
	}

	if value, ok := c.store.Get(key); ok {
		c.countHit(category)
		return value, nil
	}
	c.countMiss(category)

	value, err, shared := c.group.Do(key, func() (interface{}, error) {
		result, err := c.source.Query(ctx, customerID, category, params)
		if err != nil {
			return nil, err
		}
		// Store before the in-flight record is released so a caller that
		// arrives after settlement reads the populated entry.
		c.store.Set(key, result, category)
		return result, nil
	})
	if shared {
		c.countCoalesced(category)
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (c *Client) countHit(category string) {
	if c.metrics != nil {
		c.metrics.CacheHits.WithLabelValues(category).Inc()
	}
}

func (c *Client) countMiss(category string) {
	if c.metrics != nil {
		c.metrics.CacheMisses.WithLabelValues(category).Inc()
	}
}

func (c *Client) countCoalesced(category string) {
	if c.metrics != nil {
		c.metrics.CacheCoalesced.WithLabelValues(category).Inc()
	}
}
