package cache

import (
	"context"
	"sync"
	"time"

	"campaign-backend/pkg/observability"

	"go.uber.org/zap"
)

// WarmupQuery is one configured (category, params) pair fired on a
// customer's first authenticated access. Params must be the same value a
// real caller would pass for that category, so the warmed entry lands under
// the key that caller will ask for.
type WarmupQuery struct {
	Category string
	Params   interface{}
}

// Preloader warms commonly needed queries for a customer without blocking
// the request that triggered it. Every warmup query goes through the cached
// client, so it obeys the same TTL and single-flight rules as real callers;
// a real caller that wants the same key while warmup is in flight joins that
// query instead of duplicating it. Warmup failures are logged and swallowed.
type Preloader struct {
	client  Source
	queries []WarmupQuery
	timeout time.Duration

	// Debounce per customer so repeated logins inside a TTL window do not
	// spawn redundant goroutines. Single-flight makes extra fires harmless,
	// just wasteful.
	mu       sync.Mutex
	lastFire map[string]time.Time
	debounce time.Duration

	wg      sync.WaitGroup
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewPreloader creates a preloader firing the given warmup queries. timeout
// bounds each warmup query; debounce suppresses re-fires per customer.
// metrics may be nil.
func NewPreloader(client Source, queries []WarmupQuery, timeout, debounce time.Duration, metrics *observability.Collector, logger *zap.Logger) *Preloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Preloader{
		client:   client,
		queries:  queries,
		timeout:  timeout,
		lastFire: make(map[string]time.Time),
		debounce: debounce,
		metrics:  metrics,
		logger:   logger,
	}
}

// Preload fires the configured warmup queries for customerID and returns
// immediately. Safe to call on every authentication event.
func (p *Preloader) Preload(customerID string) {
	if len(p.queries) == 0 || customerID == "" {
		return
	}

	if !p.shouldFire(customerID) {
		return
	}

	p.wg.Add(1)
	go p.run(customerID)
}

// Wait blocks until all in-flight warmup runs settle. Used in tests and
// during shutdown.
func (p *Preloader) Wait() {
	p.wg.Wait()
}

func (p *Preloader) shouldFire(customerID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce > 0 {
		if last, ok := p.lastFire[customerID]; ok && time.Since(last) < p.debounce {
			return false
		}
	}
	p.lastFire[customerID] = time.Now()
	return true
}

func (p *Preloader) run(customerID string) {
	defer p.wg.Done()

	// Detached from the triggering request on purpose: warmup must survive
	// the authentication request returning.
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	for _, query := range p.queries {
		if _, err := p.client.Query(ctx, customerID, query.Category, query.Params); err != nil {
			p.countPreload("error")
			p.logger.Warn("Warmup query failed",
				zap.String("customerID", customerID),
				zap.String("category", query.Category),
				zap.Error(err),
			)
			continue
		}
		p.countPreload("success")
	}

	p.logger.Debug("Warmup run finished",
		zap.String("customerID", customerID),
		zap.Int("queries", len(p.queries)),
	)
}

func (p *Preloader) countPreload(outcome string) {
	if p.metrics != nil {
		p.metrics.PreloadQueries.WithLabelValues(outcome).Inc()
	}
}
