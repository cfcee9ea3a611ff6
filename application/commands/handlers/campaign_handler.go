// Package handlers contains the command handlers of the write path. Each
// handler forwards to the graph API and, after a successful write, removes
// the cached analytics for the touched entity before returning. A read that
// starts after a write call returns must never see stale cached data.
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

// CampaignCommandHandler handles campaign write commands.
type CampaignCommandHandler struct {
	graph       ports.GraphAPI
	invalidator ports.CacheInvalidator
	logger      *zap.Logger
}

// NewCampaignCommandHandler creates the handler.
func NewCampaignCommandHandler(graph ports.GraphAPI, invalidator ports.CacheInvalidator, logger *zap.Logger) *CampaignCommandHandler {
	return &CampaignCommandHandler{graph: graph, invalidator: invalidator, logger: logger}
}

// Handle dispatches on the concrete campaign command type.
func (h *CampaignCommandHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	switch c := cmd.(type) {
	case commands.CreateCampaignCommand:
		return h.create(ctx, c)
	case commands.UpdateCampaignCommand:
		return h.update(ctx, c)
	case commands.DeleteCampaignCommand:
		return nil, h.delete(ctx, c)
	default:
		return nil, apperrors.NewInternalError("unsupported campaign command")
	}
}

func (h *CampaignCommandHandler) create(ctx context.Context, cmd commands.CreateCampaignCommand) (*entities.Campaign, error) {
	campaign, err := h.graph.CreateCampaign(ctx, cmd.CustomerID, cmd.Draft())
	if err != nil {
		return nil, err
	}

	removed := h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCampaign, campaign.ID)
	h.logger.Info("campaign created",
		zap.String("customer_id", cmd.CustomerID),
		zap.String("campaign_id", campaign.ID),
		zap.Int("cache_entries_removed", removed))
	return campaign, nil
}

func (h *CampaignCommandHandler) update(ctx context.Context, cmd commands.UpdateCampaignCommand) (*entities.Campaign, error) {
	campaign, err := h.graph.UpdateCampaign(ctx, cmd.CustomerID, cmd.CampaignID, cmd.Patch())
	if err != nil {
		return nil, err
	}

	removed := h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCampaign, cmd.CampaignID)
	h.logger.Info("campaign updated",
		zap.String("customer_id", cmd.CustomerID),
		zap.String("campaign_id", cmd.CampaignID),
		zap.Int("cache_entries_removed", removed))
	return campaign, nil
}

func (h *CampaignCommandHandler) delete(ctx context.Context, cmd commands.DeleteCampaignCommand) error {
	if err := h.graph.DeleteCampaign(ctx, cmd.CustomerID, cmd.CampaignID); err != nil {
		return err
	}

	removed := h.invalidator.Invalidate(cmd.CustomerID, entities.EntityTypeCampaign, cmd.CampaignID)
	h.logger.Info("campaign deleted",
		zap.String("customer_id", cmd.CustomerID),
		zap.String("campaign_id", cmd.CampaignID),
		zap.Int("cache_entries_removed", removed))
	return nil
}
