// Package commands defines the write operations of the tool surface. Every
// command is forwarded to the graph API and, on success, invalidates the
// cached analytics for the touched entity.
package commands

import (
	"campaign-backend/application/ports"
	"campaign-backend/pkg/utils"
)

// CreateCampaignCommand creates a campaign under a brand account.
type CreateCampaignCommand struct {
	CustomerID     string  `validate:"required"`
	BrandAccountID string  `validate:"required"`
	Name           string  `validate:"required,min=1,max=255"`
	BudgetTotal    float64 `validate:"gt=0"`
	Currency       string  `validate:"required,len=3"`
	StartDate      string
	EndDate        string
}

func (c CreateCampaignCommand) Validate() error { return utils.ValidateStruct(c) }

// Draft converts the command into the graph API draft shape.
func (c CreateCampaignCommand) Draft() ports.CampaignDraft {
	return ports.CampaignDraft{
		BrandAccountID: c.BrandAccountID,
		Name:           c.Name,
		BudgetTotal:    c.BudgetTotal,
		Currency:       c.Currency,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
	}
}

// UpdateCampaignCommand applies a partial update to a campaign. Nil fields
// are left unchanged.
type UpdateCampaignCommand struct {
	CustomerID  string `validate:"required"`
	CampaignID  string `validate:"required"`
	Name        *string
	Status      *string `validate:"omitempty,oneof=DRAFT ACTIVE PAUSED ARCHIVED"`
	BudgetTotal *float64
	StartDate   *string
	EndDate     *string
}

func (c UpdateCampaignCommand) Validate() error { return utils.ValidateStruct(c) }

// Patch converts the command into the graph API patch shape.
func (c UpdateCampaignCommand) Patch() ports.CampaignPatch {
	return ports.CampaignPatch{
		Name:        c.Name,
		Status:      c.Status,
		BudgetTotal: c.BudgetTotal,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
	}
}

// DeleteCampaignCommand archives a campaign.
type DeleteCampaignCommand struct {
	CustomerID string `validate:"required"`
	CampaignID string `validate:"required"`
}

func (c DeleteCampaignCommand) Validate() error { return utils.ValidateStruct(c) }

// CreateCreativeCommand registers a new creative asset.
type CreateCreativeCommand struct {
	CustomerID     string `validate:"required"`
	BrandAccountID string `validate:"required"`
	Name           string `validate:"required,min=1,max=255"`
	Format         string `validate:"required,oneof=image video html5 native"`
	AssetURL       string `validate:"omitempty,url"`
	CampaignIDs    []string
}

func (c CreateCreativeCommand) Validate() error { return utils.ValidateStruct(c) }

// Draft converts the command into the graph API draft shape.
func (c CreateCreativeCommand) Draft() ports.CreativeDraft {
	return ports.CreativeDraft{
		BrandAccountID: c.BrandAccountID,
		Name:           c.Name,
		Format:         c.Format,
		AssetURL:       c.AssetURL,
		CampaignIDs:    c.CampaignIDs,
	}
}

// UpdateCreativeCommand applies a partial update to a creative.
type UpdateCreativeCommand struct {
	CustomerID  string `validate:"required"`
	CreativeID  string `validate:"required"`
	Name        *string
	Status      *string `validate:"omitempty,oneof=ACTIVE PAUSED ARCHIVED"`
	AssetURL    *string `validate:"omitempty,url"`
	CampaignIDs *[]string
}

func (c UpdateCreativeCommand) Validate() error { return utils.ValidateStruct(c) }

// Patch converts the command into the graph API patch shape.
func (c UpdateCreativeCommand) Patch() ports.CreativePatch {
	return ports.CreativePatch{
		Name:        c.Name,
		Status:      c.Status,
		AssetURL:    c.AssetURL,
		CampaignIDs: c.CampaignIDs,
	}
}

// UpdateBrandAccountCommand applies a partial update to a brand account.
type UpdateBrandAccountCommand struct {
	CustomerID        string `validate:"required"`
	BrandAccountID    string `validate:"required"`
	Name              *string
	AdvertiserDomains *[]string
}

func (c UpdateBrandAccountCommand) Validate() error { return utils.ValidateStruct(c) }

// Patch converts the command into the graph API patch shape.
func (c UpdateBrandAccountCommand) Patch() ports.BrandAccountPatch {
	return ports.BrandAccountPatch{
		Name:              c.Name,
		AdvertiserDomains: c.AdvertiserDomains,
	}
}
