// Package ports declares the collaborator contracts the application layer
// depends on. Infrastructure packages implement them; tests substitute
// doubles.
package ports

import (
	"context"

	"campaign-backend/domain/entities"
)

// AnalyticsQuerier is the metered analytical backend contract. The cached
// query client and the raw insights client both satisfy it, so the
// application layer never knows whether a result was cached.
type AnalyticsQuerier interface {
	Query(ctx context.Context, customerID, category string, params interface{}) (interface{}, error)
}

// CacheInvalidator removes cached analytics entries made stale by a write.
type CacheInvalidator interface {
	Invalidate(customerID, entityType, entityID string) int
}

// CampaignDraft carries the fields needed to create a campaign.
type CampaignDraft struct {
	BrandAccountID string
	Name           string
	BudgetTotal    float64
	Currency       string
	StartDate      string
	EndDate        string
}

// CampaignPatch carries partial campaign updates; nil fields are unchanged.
type CampaignPatch struct {
	Name        *string
	Status      *string
	BudgetTotal *float64
	StartDate   *string
	EndDate     *string
}

// CreativeDraft carries the fields needed to create a creative.
type CreativeDraft struct {
	BrandAccountID string
	Name           string
	Format         string
	AssetURL       string
	CampaignIDs    []string
}

// CreativePatch carries partial creative updates; nil fields are unchanged.
type CreativePatch struct {
	Name        *string
	Status      *string
	AssetURL    *string
	CampaignIDs *[]string
}

// BrandAccountPatch carries partial brand account updates.
type BrandAccountPatch struct {
	Name              *string
	AdvertiserDomains *[]string
}

// GraphAPI is the external graph-query API the write path forwards to.
type GraphAPI interface {
	CreateCampaign(ctx context.Context, customerID string, draft CampaignDraft) (*entities.Campaign, error)
	UpdateCampaign(ctx context.Context, customerID, campaignID string, patch CampaignPatch) (*entities.Campaign, error)
	DeleteCampaign(ctx context.Context, customerID, campaignID string) error

	CreateCreative(ctx context.Context, customerID string, draft CreativeDraft) (*entities.Creative, error)
	UpdateCreative(ctx context.Context, customerID, creativeID string, patch CreativePatch) (*entities.Creative, error)

	UpdateBrandAccount(ctx context.Context, customerID, accountID string, patch BrandAccountPatch) (*entities.BrandAccount, error)
}
