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

// BrandAccountHandler handles brand account HTTP requests
type BrandAccountHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewBrandAccountHandler creates a new brand account handler
func NewBrandAccountHandler(commandBus *bus.CommandBus, logger *zap.Logger) *BrandAccountHandler {
	return &BrandAccountHandler{commandBus: commandBus, logger: logger}
}

// UpdateBrandAccountRequest represents the request body for updating a brand account
type UpdateBrandAccountRequest struct {
	Name              *string   `json:"name,omitempty"`
	AdvertiserDomains *[]string `json:"advertiserDomains,omitempty"`
}

// UpdateBrandAccount handles PATCH /brand-accounts/{accountID}
func (h *BrandAccountHandler) UpdateBrandAccount(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrandAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := auth.GetCustomerFromContext(r.Context())
	if err != nil {
		respondMessage(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateBrandAccountCommand{
		CustomerID:        customer.CustomerID,
		BrandAccountID:    chi.URLParam(r, "accountID"),
		Name:              req.Name,
		AdvertiserDomains: req.AdvertiserDomains,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
