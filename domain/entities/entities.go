// Package entities defines the advertising domain records the tool surface
// operates on. The cache layer treats all of them as opaque payloads; the
// entity type labels below double as query categories and invalidation
// scopes.
package entities

import "time"

// Entity type labels. Used as cache query categories and invalidation scopes.
const (
	EntityTypeBrandAccount = "brand-account"
	EntityTypeCampaign     = "campaign"
	EntityTypeCreative     = "creative"
)

// Campaign statuses as reported by the graph API.
const (
	CampaignStatusDraft    = "DRAFT"
	CampaignStatusActive   = "ACTIVE"
	CampaignStatusPaused   = "PAUSED"
	CampaignStatusArchived = "ARCHIVED"
)

// Campaign is an advertising campaign owned by a brand account.
type Campaign struct {
	ID             string    `json:"id"`
	BrandAccountID string    `json:"brandAccountId"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	BudgetTotal    float64   `json:"budgetTotal"`
	Currency       string    `json:"currency"`
	StartDate      string    `json:"startDate,omitempty"`
	EndDate        string    `json:"endDate,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Creative is an ad asset assignable to campaigns.
type Creative struct {
	ID             string    `json:"id"`
	BrandAccountID string    `json:"brandAccountId"`
	Name           string    `json:"name"`
	Format         string    `json:"format"`
	AssetURL       string    `json:"assetUrl,omitempty"`
	CampaignIDs    []string  `json:"campaignIds,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BrandAccount is the advertiser account campaigns belong to.
type BrandAccount struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	AdvertiserDomains []string `json:"advertiserDomains,omitempty"`
	Currency          string   `json:"currency"`
}
