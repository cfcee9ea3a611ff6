// Package cache implements the query-caching layer that sits in front of the
// metered analytical backend: a bounded TTL store, deterministic key
// derivation, single-flight request coalescing, write invalidation, and
// asynchronous warmup.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store is a bounded in-memory cache keyed by opaque strings, with per-entry
// TTL from a Policy and LRU eviction when full. Expiry is checked on read;
// an optional janitor bounds memory between reads.
//
// Thread-safe. Suitable for a single process only: each instance owns its
// entries and shares nothing across processes.
type Store struct {
	mu       sync.Mutex
	items    map[string]*storeItem
	lruList  *list.List
	maxItems int
	policy   *Policy
	onEvict  func(count int)

	hits      int64
	misses    int64
	evictions int64

	logger *zap.Logger
}

type storeItem struct {
	key        string
	value      interface{}
	insertedAt time.Time
	expiresAt  time.Time
	lruElement *list.Element
}

// NewStore creates a store holding at most maxItems entries. A non-positive
// maxItems means unbounded.
func NewStore(policy *Policy, maxItems int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		items:    make(map[string]*storeItem),
		lruList:  list.New(),
		maxItems: maxItems,
		policy:   policy,
		logger:   logger,
	}
}

// SetEvictionHook registers a callback invoked with the number of entries
// removed by LRU eviction or janitor sweeps. Used to feed metrics.
func (s *Store) SetEvictionHook(hook func(count int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = hook
}

// Get returns the cached value for key if present and unexpired. An expired
// entry is removed as a side effect and reported as absent.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[key]
	if !exists {
		s.misses++
		return nil, false
	}

	if !time.Now().Before(item.expiresAt) {
		s.removeItem(item)
		s.misses++
		return nil, false
	}

	s.lruList.MoveToFront(item.lruElement)
	s.hits++
	return item.value, true
}

// Set stores value under key, overwriting any existing entry. The expiry is
// insertion time plus the policy TTL for category.
func (s *Store) Set(key string, value interface{}, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.items[key]; exists {
		s.removeItem(existing)
	}

	// Evict least-recently-used entries to make room.
	evicted := 0
	for s.maxItems > 0 && len(s.items) >= s.maxItems && s.lruList.Len() > 0 {
		oldest := s.lruList.Back()
		if oldest == nil {
			break
		}
		s.removeItem(oldest.Value.(*storeItem))
		s.evictions++
		evicted++
	}
	if evicted > 0 && s.onEvict != nil {
		s.onEvict(evicted)
	}

	now := time.Now()
	item := &storeItem{
		key:        key,
		value:      value,
		insertedAt: now,
		expiresAt:  now.Add(s.policy.TTL(category)),
	}
	item.lruElement = s.lruList.PushFront(item)
	s.items[key] = item
}

// DeleteByPrefix removes every entry whose key starts with prefix and
// returns the number removed.
func (s *Store) DeleteByPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	toDelete := make([]*storeItem, 0)
	for key, item := range s.items {
		if strings.HasPrefix(key, prefix) {
			toDelete = append(toDelete, item)
		}
	}

	for _, item := range toDelete {
		s.removeItem(item)
	}

	if len(toDelete) > 0 {
		s.logger.Debug("Deleted cache entries by prefix",
			zap.String("prefix", prefix),
			zap.Int("count", len(toDelete)),
		)
	}

	return len(toDelete)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*storeItem)
	s.lruList.Init()
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// removeItem removes an item from the store (must be called with lock held)
func (s *Store) removeItem(item *storeItem) {
	if item.lruElement != nil {
		s.lruList.Remove(item.lruElement)
	}
	delete(s.items, item.key)
}

// Stats holds store counters since construction.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Items     int
	HitRate   float64
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	hitRate := float64(0)
	if total := s.hits + s.misses; total > 0 {
		hitRate = float64(s.hits) / float64(total)
	}

	return Stats{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Items:     len(s.items),
		HitRate:   hitRate,
	}
}

// StartJanitor launches a background goroutine that sweeps expired entries
// every interval until stop is closed. Expiry-on-read remains authoritative;
// the janitor only bounds memory held by keys nobody reads again.
func (s *Store) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweepExpired()
			case <-stop:
				return
			}
		}
	}()
}

// sweepExpired removes expired items from the store
func (s *Store) sweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	toRemove := make([]*storeItem, 0)

	for _, item := range s.items {
		if !now.Before(item.expiresAt) {
			toRemove = append(toRemove, item)
		}
	}

	for _, item := range toRemove {
		s.removeItem(item)
	}

	if len(toRemove) > 0 {
		if s.onEvict != nil {
			s.onEvict(len(toRemove))
		}
		s.logger.Debug("Swept expired cache entries",
			zap.Int("count", len(toRemove)),
		)
	}
}
