package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"campaign-backend/application/commands"
	"campaign-backend/application/commands/bus"
	"campaign-backend/pkg/auth"
)

// CreativeHandler handles creative-related HTTP requests
type CreativeHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewCreativeHandler creates a new creative handler
func NewCreativeHandler(commandBus *bus.CommandBus, logger *zap.Logger) *CreativeHandler {
	return &CreativeHandler{commandBus: commandBus, logger: logger}
}

// CreateCreativeRequest represents the request body for creating a creative
type CreateCreativeRequest struct {
	BrandAccountID string   `json:"brandAccountId" validate:"required"`
	Name           string   `json:"name" validate:"required,min=1,max=255"`
	Format         string   `json:"format" validate:"required"`
	AssetURL       string   `json:"assetUrl,omitempty"`
	CampaignIDs    []string `json:"campaignIds,omitempty"`
}

// UpdateCreativeRequest represents the request body for updating a creative
type UpdateCreativeRequest struct {
	Name        *string   `json:"name,omitempty"`
	Status      *string   `json:"status,omitempty"`
	AssetURL    *string   `json:"assetUrl,omitempty"`
	CampaignIDs *[]string `json:"campaignIds,omitempty"`
}

// CreateCreative handles POST /creatives
func (h *CreativeHandler) CreateCreative(w http.ResponseWriter, r *http.Request) {
	var req CreateCreativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateCreativeCommand{
		CustomerID:     customer.CustomerID,
		BrandAccountID: req.BrandAccountID,
		Name:           req.Name,
		Format:         req.Format,
		AssetURL:       req.AssetURL,
		CampaignIDs:    req.CampaignIDs,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, result)
}

// UpdateCreative handles PATCH /creatives/{creativeID}
func (h *CreativeHandler) UpdateCreative(w http.ResponseWriter, r *http.Request) {
	var req UpdateCreativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateCreativeCommand{
		CustomerID:  customer.CustomerID,
		CreativeID:  chi.URLParam(r, "creativeID"),
		Name:        req.Name,
		Status:      req.Status,
		AssetURL:    req.AssetURL,
		CampaignIDs: req.CampaignIDs,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
