// Package rest wires the tool surface routes: campaign, creative, and brand
// account writes plus the cached analytics reads.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"campaign-backend/application/commands/bus"
	querybus "campaign-backend/application/queries/bus"
	"campaign-backend/interfaces/http/rest/handlers"
	"campaign-backend/interfaces/http/rest/middleware"
	"campaign-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	auth       *middleware.AuthMiddleware
	metrics    *observability.Collector
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	auth *middleware.AuthMiddleware,
	metrics *observability.Collector,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		auth:       auth,
		metrics:    metrics,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger, rt.metrics))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.auth.Authenticate())

		// Campaign endpoints
		r.Route("/campaigns", func(r chi.Router) {
			campaignHandler := handlers.NewCampaignHandler(rt.commandBus, rt.queryBus, rt.logger)
			reportHandler := handlers.NewReportHandler(rt.queryBus, rt.logger)
			r.Post("/", campaignHandler.CreateCampaign)
			r.Get("/", campaignHandler.ListCampaigns)
			r.Patch("/{campaignID}", campaignHandler.UpdateCampaign)
			r.Delete("/{campaignID}", campaignHandler.DeleteCampaign)
			r.Get("/{campaignID}/summary", reportHandler.GetCampaignSummary)
		})

		// Creative endpoints
		r.Route("/creatives", func(r chi.Router) {
			creativeHandler := handlers.NewCreativeHandler(rt.commandBus, rt.logger)
			reportHandler := handlers.NewReportHandler(rt.queryBus, rt.logger)
			r.Post("/", creativeHandler.CreateCreative)
			r.Patch("/{creativeID}", creativeHandler.UpdateCreative)
			r.Get("/{creativeID}/performance", reportHandler.GetCreativePerformance)
		})

		// Brand account endpoints
		r.Route("/brand-accounts", func(r chi.Router) {
			brandHandler := handlers.NewBrandAccountHandler(rt.commandBus, rt.logger)
			reportHandler := handlers.NewReportHandler(rt.queryBus, rt.logger)
			r.Patch("/{accountID}", brandHandler.UpdateBrandAccount)
			r.Get("/{accountID}/overview", reportHandler.GetBrandOverview)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
