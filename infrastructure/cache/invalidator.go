package cache

import (
	"campaign-backend/pkg/observability"

	"go.uber.org/zap"
)

// Invalidator removes cached query results made stale by writes. Write
// handlers call it synchronously after a successful write and before
// returning, so a read that starts after the write returns never sees stale
// data for that entity. A failed write invalidates nothing.
type Invalidator struct {
	store   *Store
	keys    *KeyBuilder
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewInvalidator creates an invalidator. metrics may be nil.
func NewInvalidator(store *Store, keys *KeyBuilder, metrics *observability.Collector, logger *zap.Logger) *Invalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invalidator{
		store:   store,
		keys:    keys,
		metrics: metrics,
		logger:  logger,
	}
}

// Invalidate deletes every cached entry scoped to (customerID, entityType,
// entityID) and returns the number removed. Entries for other customers or
// other entities are untouched.
func (i *Invalidator) Invalidate(customerID, entityType, entityID string) int {
	prefix := i.keys.EntityPrefix(customerID, entityType, entityID)
	removed := i.store.DeleteByPrefix(prefix)

	if i.metrics != nil && removed > 0 {
		i.metrics.CacheInvalidations.Add(float64(removed))
	}

	i.logger.Debug("Invalidated cache entries",
		zap.String("customerID", customerID),
		zap.String("entityType", entityType),
		zap.String("entityID", entityID),
		zap.Int("removed", removed),
	)

	return removed
}

// InvalidateCustomer deletes every cached entry for a customer. Used when a
// customer's upstream account state changes wholesale.
func (i *Invalidator) InvalidateCustomer(customerID string) int {
	removed := i.store.DeleteByPrefix(i.keys.CustomerPrefix(customerID))

	if i.metrics != nil && removed > 0 {
		i.metrics.CacheInvalidations.Add(float64(removed))
	}

	return removed
}
