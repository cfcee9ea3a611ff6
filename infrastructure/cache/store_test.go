package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxItems int) *Store {
	t.Helper()
	policy, err := NewPolicy(time.Minute, map[string]time.Duration{
		"short": 40 * time.Millisecond,
	})
	require.NoError(t, err)
	return NewStore(policy, maxItems, nil)
}

func TestStoreGetSet(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		store := newTestStore(t, 0)
		store.Set("k1", "v1", "campaign")

		got, ok := store.Get("k1")
		require.True(t, ok)
		assert.Equal(t, "v1", got)
	})

	t.Run("absent key", func(t *testing.T) {
		store := newTestStore(t, 0)
		_, ok := store.Get("missing")
		assert.False(t, ok)
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		store := newTestStore(t, 0)
		store.Set("k1", "old", "campaign")
		store.Set("k1", "new", "campaign")

		got, ok := store.Get("k1")
		require.True(t, ok)
		assert.Equal(t, "new", got)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("nil values are cacheable", func(t *testing.T) {
		store := newTestStore(t, 0)
		store.Set("k1", nil, "campaign")

		got, ok := store.Get("k1")
		require.True(t, ok)
		assert.Nil(t, got)
	})
}

func TestStoreExpiry(t *testing.T) {
	store := newTestStore(t, 0)
	store.Set("k1", "v1", "short")

	// Valid before the TTL elapses.
	_, ok := store.Get("k1")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	// Absent at or after expiry, and evicted as a side effect.
	_, ok = store.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStoreDeleteByPrefix(t *testing.T) {
	store := newTestStore(t, 0)
	store.Set("cust1:campaign:c1:aaa", "a", "campaign")
	store.Set("cust1:campaign:c1:bbb", "b", "campaign")
	store.Set("cust1:campaign:c2:ccc", "c", "campaign")
	store.Set("cust2:campaign:c1:ddd", "d", "campaign")

	removed := store.DeleteByPrefix("cust1:campaign:c1:")
	assert.Equal(t, 2, removed)

	// Only c1 entries for cust1 are gone.
	_, ok := store.Get("cust1:campaign:c1:aaa")
	assert.False(t, ok)
	_, ok = store.Get("cust1:campaign:c2:ccc")
	assert.True(t, ok)
	_, ok = store.Get("cust2:campaign:c1:ddd")
	assert.True(t, ok)

	t.Run("no matches removes nothing", func(t *testing.T) {
		assert.Equal(t, 0, store.DeleteByPrefix("cust9:"))
	})
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t, 0)
	store.Set("k1", "v1", "campaign")
	store.Set("k2", "v2", "campaign")

	store.Clear()

	assert.Equal(t, 0, store.Len())
	_, ok := store.Get("k1")
	assert.False(t, ok)
}

func TestStoreLRUEviction(t *testing.T) {
	store := newTestStore(t, 3)
	evicted := 0
	store.SetEvictionHook(func(count int) { evicted += count })

	store.Set("k1", 1, "campaign")
	store.Set("k2", 2, "campaign")
	store.Set("k3", 3, "campaign")

	// Touch k1 so k2 becomes the least recently used.
	_, ok := store.Get("k1")
	require.True(t, ok)

	store.Set("k4", 4, "campaign")

	_, ok = store.Get("k2")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = store.Get("k1")
	assert.True(t, ok)
	_, ok = store.Get("k4")
	assert.True(t, ok)
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 1, evicted)
}

func TestStoreJanitor(t *testing.T) {
	store := newTestStore(t, 0)
	stop := make(chan struct{})
	defer close(stop)

	store.Set("k1", "v1", "short")
	store.StartJanitor(20*time.Millisecond, stop)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond, "janitor should sweep the expired entry")
}

func TestStoreStats(t *testing.T) {
	store := newTestStore(t, 0)
	store.Set("k1", "v1", "campaign")

	store.Get("k1")      // hit
	store.Get("missing") // miss

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Items)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
}

func BenchmarkStoreGet(b *testing.B) {
	policy, _ := NewPolicy(time.Minute, nil)
	store := NewStore(policy, 0, nil)
	for i := 0; i < 1000; i++ {
		store.Set(fmt.Sprintf("key-%d", i), i, "campaign")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.Get(fmt.Sprintf("key-%d", i%1000))
	}
}
