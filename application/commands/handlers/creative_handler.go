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

// CreativeCommandHandler handles creative write commands.
type CreativeCommandHandler struct {
	graph       ports.GraphAPI
	invalidator ports.CacheInvalidator
	logger      *zap.Logger
}

// NewCreativeCommandHandler creates the handler.
func NewCreativeCommandHandler(graph ports.GraphAPI, invalidator ports.CacheInvalidator, logger *zap.Logger) *CreativeCommandHandler {
	return &CreativeCommandHandler{graph: graph, invalidator: invalidator, logger: logger}
}

// Handle dispatches on the concrete creative command type.
func (h *CreativeCommandHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	switch c := cmd.(type) {
	case commands.CreateCreativeCommand:
		return h.create(ctx, c)
	case commands.UpdateCreativeCommand:
		return h.update(ctx, c)
	default:
		return nil, apperrors.NewInternalError("unsupported creative command")
	}
}

func (h *CreativeCommandHandler) create(ctx context.Context, cmd commands.CreateCreativeCommand) (*entities.Creative, error) {
	creative, err := h.graph.CreateCreative(ctx, cmd.CustomerID, cmd.Draft())
	if err != nil {
		return nil, err
	}

	removed := h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCreative, creative.ID)
	// Assigning a creative changes the campaigns' aggregates too.
	for _, campaignID := range creative.CampaignIDs {
		removed += h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCampaign, campaignID)
	}
	h.logger.Info("creative created",
		zap.String("customer_id", cmd.CustomerID),
		zap.String("creative_id", creative.ID),
		zap.Int("cache_entries_removed", removed))
	return creative, nil
}

func (h *CreativeCommandHandler) update(ctx context.Context, cmd commands.UpdateCreativeCommand) (*entities.Creative, error) {
	creative, err := h.graph.UpdateCreative(ctx, cmd.CustomerID, cmd.CreativeID, cmd.Patch())
	if err != nil {
		return nil, err
	}

	removed := h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCreative, cmd.CreativeID)
	for _, campaignID := range creative.CampaignIDs {
		removed += h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCampaign, campaignID)
	}
	h.logger.Info("creative updated",
		zap.String("customer_id", cmd.CustomerID),
		zap.String("creative_id", cmd.CreativeID),
		zap.Int("cache_entries_removed", removed))
	return creative, nil
}
