// Package handlers contains the read-path query handlers. They all follow
// the same shape: resolve the backend category, let the cache façade answer
// or forward, then render the payload as tool-friendly text.
package handlers

import (
	"context"

	"campaign-backend/application/ports"
	"campaign-backend/application/queries"
	"campaign-backend/application/queries/bus"
	"campaign-backend/domain/entities"
	apperrors "campaign-backend/pkg/errors"
	"campaign-backend/pkg/format"
)

// AnalyticsQueryHandler answers all read queries against the analytical
// backend through the cache façade.
type AnalyticsQueryHandler struct {
	analytics ports.AnalyticsQuerier
}

// NewAnalyticsQueryHandler creates the handler.
func NewAnalyticsQueryHandler(analytics ports.AnalyticsQuerier) *AnalyticsQueryHandler {
	return &AnalyticsQueryHandler{analytics: analytics}
}

// Handle resolves the query's customer and category and runs it.
func (h *AnalyticsQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	var customerID, category string

	switch q := query.(type) {
	case queries.CampaignSummaryQuery:
		customerID, category = q.CustomerID, entities.EntityTypeCampaign
	case queries.ListCampaignsQuery:
		customerID, category = q.CustomerID, entities.EntityTypeCampaign
	case queries.CreativePerformanceQuery:
		customerID, category = q.CustomerID, entities.EntityTypeCreative
	case queries.BrandOverviewQuery:
		customerID, category = q.CustomerID, entities.EntityTypeBrandAccount
	default:
		return nil, apperrors.NewInternalError("unsupported analytics query")
	}

	data, err := h.analytics.Query(ctx, customerID, category, query)
	if err != nil {
		return nil, err
	}

	return &queries.Result{Data: data, Text: format.Value(data)}, nil
}
