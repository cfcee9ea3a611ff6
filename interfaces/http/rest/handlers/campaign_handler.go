package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"campaign-backend/application/commands"
	"campaign-backend/application/commands/bus"
	"campaign-backend/application/queries"
	querybus "campaign-backend/application/queries/bus"
	"campaign-backend/pkg/auth"
)

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateCampaignRequest represents the request body for creating a campaign
type CreateCampaignRequest struct {
	BrandAccountID string  `json:"brandAccountId" validate:"required"`
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	BudgetTotal    float64 `json:"budgetTotal" validate:"gt=0"`
	Currency       string  `json:"currency" validate:"required,len=3"`
	StartDate      string  `json:"startDate,omitempty"`
	EndDate        string  `json:"endDate,omitempty"`
}

// UpdateCampaignRequest represents the request body for updating a campaign
type UpdateCampaignRequest struct {
	Name        *string  `json:"name,omitempty"`
	Status      *string  `json:"status,omitempty"`
	BudgetTotal *float64 `json:"budgetTotal,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateCampaignCommand{
		CustomerID:     customer.CustomerID,
		BrandAccountID: req.BrandAccountID,
		Name:           req.Name,
		BudgetTotal:    req.BudgetTotal,
		Currency:       req.Currency,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, result)
}

// UpdateCampaign handles PATCH /campaigns/{campaignID}
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateCampaignCommand{
		CustomerID:  customer.CustomerID,
		CampaignID:  chi.URLParam(r, "campaignID"),
		Name:        req.Name,
		Status:      req.Status,
		BudgetTotal: req.BudgetTotal,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// DeleteCampaign handles DELETE /campaigns/{campaignID}
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	_, err = h.commandBus.Send(r.Context(), commands.DeleteCampaignCommand{
		CustomerID: customer.CustomerID,
		CampaignID: chi.URLParam(r, "campaignID"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondMessage(w, h.logger, http.StatusOK, "campaign deleted")
}

// ListCampaigns handles GET /campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.ListCampaignsQuery{
		CustomerID: customer.CustomerID,
		Status:     r.URL.Query().Get("status"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, convErr := parsePositiveInt(limit)
		if convErr != nil {
			respondMessage(w, h.logger, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		query.Limit = n
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
