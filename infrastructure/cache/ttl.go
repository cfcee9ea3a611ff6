package cache

import (
	"fmt"
	"time"
)

// DefaultTTL is used for any category without an explicit policy entry.
const DefaultTTL = 5 * time.Minute

// Policy maps a query category to the duration its cached results stay valid.
// The table is fixed at construction and safe for concurrent reads.
type Policy struct {
	ttls       map[string]time.Duration
	defaultTTL time.Duration
}

// NewPolicy creates a TTL policy. Every duration must be positive; a zero
// defaultTTL falls back to DefaultTTL.
func NewPolicy(defaultTTL time.Duration, overrides map[string]time.Duration) (*Policy, error) {
	if defaultTTL == 0 {
		defaultTTL = DefaultTTL
	}
	if defaultTTL < 0 {
		return nil, fmt.Errorf("default TTL must be positive, got %v", defaultTTL)
	}

	ttls := make(map[string]time.Duration, len(overrides))
	for category, ttl := range overrides {
		if ttl <= 0 {
			return nil, fmt.Errorf("TTL for category %q must be positive, got %v", category, ttl)
		}
		ttls[category] = ttl
	}

	return &Policy{ttls: ttls, defaultTTL: defaultTTL}, nil
}

// TTL returns the time-to-live for a category, falling back to the default
// for unmapped categories.
func (p *Policy) TTL(category string) time.Duration {
	if ttl, ok := p.ttls[category]; ok {
		return ttl
	}
	return p.defaultTTL
}
