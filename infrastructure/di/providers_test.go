package di

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-backend/infrastructure/cache"
	"campaign-backend/infrastructure/config"
)

func TestStoreEvictionsReachMetrics(t *testing.T) {
	policy, err := cache.NewPolicy(time.Minute, nil)
	require.NoError(t, err)
	metrics := ProvideMetrics()

	cfg := &config.Config{CacheMaxItems: 1}
	store := ProvideStore(policy, cfg, metrics, zap.NewNop())

	store.Set("campaign:a", "one", "campaign")
	store.Set("campaign:b", "two", "campaign")

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheEvictions))
}
