package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warmupFixtures() []WarmupQuery {
	return []WarmupQuery{
		{Category: "brand-account", Params: map[string]interface{}{"view": "overview"}},
		{Category: "campaign", Params: map[string]interface{}{"window": "30d"}},
	}
}

func TestPreloadDoesNotBlock(t *testing.T) {
	source := newFakeSource()
	source.delay = 300 * time.Millisecond
	client, _ := newTestClient(t, source)
	preloader := NewPreloader(client, warmupFixtures(), time.Second, 0, nil, nil)

	start := time.Now()
	preloader.Preload("cust1")
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 50*time.Millisecond, "Preload must return before warmup queries settle")
	preloader.Wait()
}

func TestPreloadWarmsCache(t *testing.T) {
	source := newFakeSource()
	client, _ := newTestClient(t, source)
	preloader := NewPreloader(client, warmupFixtures(), time.Second, 0, nil, nil)

	preloader.Preload("cust1")
	preloader.Wait()
	require.Equal(t, int64(2), source.calls.Load())

	// A real caller asking for a warmed query hits the cache.
	_, err := client.Query(context.Background(), "cust1", "campaign", map[string]interface{}{"window": "30d"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), source.calls.Load())
}

func TestPreloadWarmsScopedQueries(t *testing.T) {
	source := newFakeSource()
	client, _ := newTestClient(t, source)
	warm := []WarmupQuery{{Category: "campaign", Params: scopedParams{CampaignID: "c1", Window: "7d"}}}
	preloader := NewPreloader(client, warm, time.Second, 0, nil, nil)

	preloader.Preload("cust1")
	preloader.Wait()
	require.Equal(t, int64(1), source.calls.Load())

	// The warmed entry must sit under the scoped key the read path computes,
	// so the identical scoped query never reaches the backend.
	_, err := client.Query(context.Background(), "cust1", "campaign", scopedParams{CampaignID: "c1", Window: "7d"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), source.calls.Load(), "scoped read after warmup must be a cache hit")
}

func TestPreloadJoinsInFlightQueries(t *testing.T) {
	source := newFakeSource()
	source.release = make(chan struct{})
	client, _ := newTestClient(t, source)
	queries := []WarmupQuery{{Category: "campaign", Params: map[string]interface{}{"window": "30d"}}}
	preloader := NewPreloader(client, queries, time.Second, 0, nil, nil)

	preloader.Preload("cust1")
	time.Sleep(20 * time.Millisecond) // let the warmup query start

	// A real caller for the same key joins the in-flight warmup query.
	done := make(chan error, 1)
	go func() {
		_, err := client.Query(context.Background(), "cust1", "campaign", map[string]interface{}{"window": "30d"})
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(source.release)

	require.NoError(t, <-done)
	preloader.Wait()
	assert.Equal(t, int64(1), source.calls.Load(), "real caller must join the warmup query, not duplicate it")
}

func TestPreloadSwallowsErrors(t *testing.T) {
	source := newFakeSource()
	source.failWith("cust1", errors.New("backend down"))
	client, _ := newTestClient(t, source)
	preloader := NewPreloader(client, warmupFixtures(), time.Second, 0, nil, nil)

	// Must not panic or surface anywhere; failures are logged and dropped.
	preloader.Preload("cust1")
	preloader.Wait()

	assert.Equal(t, int64(2), source.calls.Load())
}

func TestPreloadDebounce(t *testing.T) {
	source := newFakeSource()
	client, _ := newTestClient(t, source)
	preloader := NewPreloader(client, warmupFixtures(), time.Second, time.Minute, nil, nil)

	preloader.Preload("cust1")
	preloader.Preload("cust1")
	preloader.Wait()

	assert.Equal(t, int64(2), source.calls.Load(), "second Preload within the debounce window must not fire")

	// Another customer is unaffected by cust1's debounce.
	preloader.Preload("cust2")
	preloader.Wait()
	assert.Equal(t, int64(4), source.calls.Load())
}

func TestPreloadIgnoresEmptyCustomer(t *testing.T) {
	source := newFakeSource()
	client, _ := newTestClient(t, source)
	preloader := NewPreloader(client, warmupFixtures(), time.Second, 0, nil, nil)

	preloader.Preload("")
	preloader.Wait()

	assert.Equal(t, int64(0), source.calls.Load())
}
