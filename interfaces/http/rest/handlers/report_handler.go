package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"campaign-backend/application/queries"
	querybus "campaign-backend/application/queries/bus"
	"campaign-backend/pkg/auth"
)

// ReportHandler handles the read tools: campaign summaries, creative
// performance, and brand overviews served from the cached analytics façade.
type ReportHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{queryBus: queryBus, logger: logger}
}

// GetCampaignSummary handles GET /campaigns/{campaignID}/summary
func (h *ReportHandler) GetCampaignSummary(w http.ResponseWriter, r *http.Request) {
	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.CampaignSummaryQuery{
		CustomerID: customer.CustomerID,
		CampaignID: chi.URLParam(r, "campaignID"),
		Window:     windowParam(r),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetCreativePerformance handles GET /creatives/{creativeID}/performance
func (h *ReportHandler) GetCreativePerformance(w http.ResponseWriter, r *http.Request) {
	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.CreativePerformanceQuery{
		CustomerID: customer.CustomerID,
		CreativeID: chi.URLParam(r, "creativeID"),
		Window:     windowParam(r),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetBrandOverview handles GET /brand-accounts/{accountID}/overview
func (h *ReportHandler) GetBrandOverview(w http.ResponseWriter, r *http.Request) {
	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.BrandOverviewQuery{
		CustomerID:     customer.CustomerID,
		BrandAccountID: chi.URLParam(r, "accountID"),
		Window:         windowParam(r),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

func windowParam(r *http.Request) string {
	window := r.URL.Query().Get("window")
	if window == "" {
		window = queries.Window30Days
	}
	return window
}
