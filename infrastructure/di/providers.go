// Package di wires the application together: the cache layer in front of the
// insights backend, the graph API write path, the buses, and the HTTP
// middleware stack.
package di

import (
	"go.uber.org/zap"

	"campaign-backend/application/commands"
	"campaign-backend/application/commands/bus"
	commandhandlers "campaign-backend/application/commands/handlers"
	"campaign-backend/application/ports"
	"campaign-backend/application/queries"
	querybus "campaign-backend/application/queries/bus"
	queryhandlers "campaign-backend/application/queries/handlers"
	"campaign-backend/infrastructure/cache"
	"campaign-backend/infrastructure/config"
	"campaign-backend/infrastructure/graphapi"
	"campaign-backend/infrastructure/insights"
	"campaign-backend/interfaces/http/rest/middleware"
	"campaign-backend/pkg/auth"
	"campaign-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("campaign_backend")
}

// ProvideCacheSettings loads per-category TTLs and warmup queries from disk
func ProvideCacheSettings(cfg *config.Config) (*config.CacheSettings, error) {
	return config.LoadCacheSettings(cfg.CacheSettingsFile)
}

// ProvideTTLPolicy creates the cache TTL policy
func ProvideTTLPolicy(cfg *config.Config, settings *config.CacheSettings) (*cache.Policy, error) {
	return cache.NewPolicy(cfg.CacheDefaultTTL, settings.TTLs)
}

// ProvideStore creates the cache store with evictions reported to the
// metrics collector
func ProvideStore(policy *cache.Policy, cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) *cache.Store {
	store := cache.NewStore(policy, cfg.CacheMaxItems, logger)
	store.SetEvictionHook(func(count int) {
		metrics.CacheEvictions.Add(float64(count))
	})
	return store
}

// ProvideKeyBuilder creates the cache key builder
func ProvideKeyBuilder() *cache.KeyBuilder {
	return cache.NewKeyBuilder()
}

// ProvideInsightsClient creates the analytical backend client
func ProvideInsightsClient(cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) *insights.Client {
	return insights.NewClient(insights.Config{
		BaseURL:      cfg.InsightsBaseURL,
		APIKey:       cfg.InsightsAPIKey,
		QueryTimeout: cfg.QueryTimeout,
		RetryMax:     cfg.InsightsRetryMax,
	}, metrics, logger)
}

// ProvideCacheClient creates the cached query façade over the insights client
func ProvideCacheClient(
	backend *insights.Client,
	store *cache.Store,
	keys *cache.KeyBuilder,
	metrics *observability.Collector,
	logger *zap.Logger,
) *cache.Client {
	return cache.NewClient(backend, store, keys, metrics, logger)
}

// ProvideAnalyticsQuerier exposes the cached façade as the read port
func ProvideAnalyticsQuerier(client *cache.Client) ports.AnalyticsQuerier {
	return client
}

// ProvideInvalidator creates the cache invalidator
func ProvideInvalidator(store *cache.Store, keys *cache.KeyBuilder, metrics *observability.Collector, logger *zap.Logger) *cache.Invalidator {
	return cache.NewInvalidator(store, keys, metrics, logger)
}

// ProvideCacheInvalidator exposes the invalidator as the write port
func ProvideCacheInvalidator(invalidator *cache.Invalidator) ports.CacheInvalidator {
	return invalidator
}

// ProvideGraphAPI creates the graph-query API client
func ProvideGraphAPI(cfg *config.Config, logger *zap.Logger) ports.GraphAPI {
	return graphapi.NewClient(graphapi.Config{
		BaseURL:  cfg.GraphAPIBaseURL,
		APIKey:   cfg.GraphAPIKey,
		RetryMax: cfg.GraphAPIRetryMax,
	}, logger)
}

// ProvidePreloader creates the cache warmup service. Each configured entry
// is decoded into the typed query for its category so warmup populates the
// same cache keys the read tools look up.
func ProvidePreloader(
	client *cache.Client,
	settings *config.CacheSettings,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*cache.Preloader, error) {
	warmup := make([]cache.WarmupQuery, 0, len(settings.Warmup))
	for _, entry := range settings.Warmup {
		params, err := queries.ForWarmup(entry.Category, entry.Params)
		if err != nil {
			return nil, err
		}
		warmup = append(warmup, cache.WarmupQuery{
			Category: entry.Category,
			Params:   params,
		})
	}
	return cache.NewPreloader(client, warmup, cfg.PreloadTimeout, cfg.PreloadDebounce, metrics, logger), nil
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(graph ports.GraphAPI, invalidator ports.CacheInvalidator, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	logged := bus.LoggingMiddleware(logger)

	campaignHandler := logged(commandhandlers.NewCampaignCommandHandler(graph, invalidator, logger))
	creativeHandler := logged(commandhandlers.NewCreativeCommandHandler(graph, invalidator, logger))
	brandHandler := logged(commandhandlers.NewBrandAccountCommandHandler(graph, invalidator, logger))

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateCampaignCommand{}, campaignHandler},
		{commands.UpdateCampaignCommand{}, campaignHandler},
		{commands.DeleteCampaignCommand{}, campaignHandler},
		{commands.CreateCreativeCommand{}, creativeHandler},
		{commands.UpdateCreativeCommand{}, creativeHandler},
		{commands.UpdateBrandAccountCommand{}, brandHandler},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(analytics ports.AnalyticsQuerier) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	handler := queryhandlers.NewAnalyticsQueryHandler(analytics)

	registrations := []querybus.Query{
		queries.CampaignSummaryQuery{},
		queries.ListCampaignsQuery{},
		queries.CreativePerformanceQuery{},
		queries.BrandOverviewQuery{},
	}
	for _, query := range registrations {
		if err := queryBus.Register(query, handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.IsDevelopment() {
		// Config validation already requires a real secret in production.
		secret = "development-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideAuthMiddleware creates the authentication middleware with both rate
// limit tiers and the cache warmup trigger attached. The limiters are built
// here because wire cannot tell two auth.RateLimiter bindings apart.
func ProvideAuthMiddleware(
	cfg *config.Config,
	validator *auth.JWTValidator,
	preloader *cache.Preloader,
	logger *zap.Logger,
) *middleware.AuthMiddleware {
	ipLimiter := auth.NewIPRateLimiter(cfg.RateLimitPerIP)
	customerLimiter := auth.NewCustomerRateLimiter(cfg.RateLimitPerCustomer)
	return middleware.NewAuthMiddleware(validator, ipLimiter, customerLimiter, preloader, logger)
}
