// Package queries defines the read operations of the tool surface. Every
// query goes to the metered analytical backend through the cache façade; the
// query value itself is the cache parameter payload, so two queries with the
// same field values share one cache entry. The customer id is carried out of
// band and never serialized into the parameter tail.
package queries

import "campaign-backend/pkg/utils"

// Reporting windows accepted by the analytical backend.
const (
	Window7Days    = "7d"
	Window30Days   = "30d"
	Window90Days   = "90d"
	WindowLifetime = "lifetime"
)

// Result is what a read tool returns: the raw payload plus a plain-text
// rendering for tool output.
type Result struct {
	Data interface{} `json:"data"`
	Text string      `json:"text"`
}

// CampaignSummaryQuery fetches aggregated metrics for one campaign.
type CampaignSummaryQuery struct {
	CustomerID string `json:"-" validate:"required"`
	CampaignID string `json:"campaignId" validate:"required"`
	Window     string `json:"window" validate:"required,oneof=7d 30d 90d lifetime"`
}

func (q CampaignSummaryQuery) Validate() error { return utils.ValidateStruct(q) }

// CacheScope pins the cache key under the campaign so a write to that
// campaign invalidates this query's entries.
func (q CampaignSummaryQuery) CacheScope() string { return q.CampaignID }

// ListCampaignsQuery lists campaigns with their headline metrics. It is not
// scoped to a single entity, so entity-level invalidation leaves it alone
// until its TTL runs out.
type ListCampaignsQuery struct {
	CustomerID string `json:"-" validate:"required"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT ACTIVE PAUSED ARCHIVED"`
	Limit      int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

func (q ListCampaignsQuery) Validate() error { return utils.ValidateStruct(q) }

// CreativePerformanceQuery fetches per-creative delivery metrics.
type CreativePerformanceQuery struct {
	CustomerID string `json:"-" validate:"required"`
	CreativeID string `json:"creativeId" validate:"required"`
	Window     string `json:"window" validate:"required,oneof=7d 30d 90d lifetime"`
}

func (q CreativePerformanceQuery) Validate() error { return utils.ValidateStruct(q) }

// CacheScope pins the cache key under the creative.
func (q CreativePerformanceQuery) CacheScope() string { return q.CreativeID }

// BrandOverviewQuery fetches spend and delivery totals for a brand account.
type BrandOverviewQuery struct {
	CustomerID     string `json:"-" validate:"required"`
	BrandAccountID string `json:"brandAccountId" validate:"required"`
	Window         string `json:"window" validate:"required,oneof=7d 30d 90d lifetime"`
}

func (q BrandOverviewQuery) Validate() error { return utils.ValidateStruct(q) }

// CacheScope pins the cache key under the brand account.
func (q BrandOverviewQuery) CacheScope() string { return q.BrandAccountID }
