package di

import (
	"go.uber.org/zap"

	"campaign-backend/application/commands/bus"
	querybus "campaign-backend/application/queries/bus"
	"campaign-backend/infrastructure/cache"
	"campaign-backend/infrastructure/config"
	"campaign-backend/interfaces/http/rest/middleware"
	"campaign-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *observability.Collector
	Store       *cache.Store
	CacheClient *cache.Client
	Invalidator *cache.Invalidator
	Preloader   *cache.Preloader
	CommandBus  *bus.CommandBus
	QueryBus    *querybus.QueryBus
	Auth        *middleware.AuthMiddleware

	janitorStop chan struct{}
}

// Start launches the background workers: the cache janitor sweep.
func (c *Container) Start() {
	if c.janitorStop != nil {
		return
	}
	c.janitorStop = make(chan struct{})
	c.Store.StartJanitor(c.Config.CacheSweepInterval, c.janitorStop)
}

// Shutdown stops background workers and drains in-flight warmup queries.
func (c *Container) Shutdown() {
	if c.janitorStop != nil {
		close(c.janitorStop)
		c.janitorStop = nil
	}
	c.Preloader.Wait()
	_ = c.Logger.Sync()
}
