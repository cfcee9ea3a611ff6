//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"campaign-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideCacheSettings,
	ProvideTTLPolicy,
	ProvideStore,
	ProvideKeyBuilder,
	ProvideInsightsClient,
	ProvideCacheClient,
	ProvideAnalyticsQuerier,
	ProvideInvalidator,
	ProvideCacheInvalidator,
	ProvideGraphAPI,
	ProvidePreloader,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideJWTValidator,
	ProvideAuthMiddleware,
	wire.Struct(new(Container),
		"Config", "Logger", "Metrics", "Store", "CacheClient",
		"Invalidator", "Preloader", "CommandBus", "QueryBus", "Auth"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
