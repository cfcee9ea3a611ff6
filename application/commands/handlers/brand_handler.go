package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-backend/application/commands"
	"campaign-backend/application/commands/bus"
	"campaign-backend/application/ports"
	"campaign-backend/domain/entities"
	apperrors "campaign-backend/pkg/errors"
)

// BrandAccountCommandHandler handles brand account write commands.
type BrandAccountCommandHandler struct {
	graph       ports.GraphAPI
	invalidator ports.CacheInvalidator
	logger      *zap.Logger
}

// NewBrandAccountCommandHandler creates the handler.
func NewBrandAccountCommandHandler(graph ports.GraphAPI, invalidator ports.CacheInvalidator, logger *zap.Logger) *BrandAccountCommandHandler {
	return &BrandAccountCommandHandler{graph: graph, invalidator: invalidator, logger: logger}
}

// Handle dispatches on the concrete brand account command type.
func (h *BrandAccountCommandHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateBrandAccountCommand)
	if !ok {
		return nil, apperrors.NewInternalError("unsupported brand account command")
	}

	account, err := h.graph.UpdateBrandAccount(ctx, c.CustomerID, c.BrandAccountID, c.Patch())
	if err != nil {
		return nil, err
	}

	removed := h.invalidator.Invalidate(c.CustomerID, entities.EntityTypeBrandAccount, c.BrandAccountID)
	h.logger.Info("brand account updated",
		zap.String("customer_id", c.CustomerID),
		zap.String("brand_account_id", c.BrandAccountID),
		zap.Int("cache_entries_removed", removed))
	return account, nil
}
