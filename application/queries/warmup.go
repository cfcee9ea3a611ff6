package queries

import (
	"bytes"
	"encoding/json"
	"fmt"

	"campaign-backend/domain/entities"
)

// ForWarmup turns a configured warmup entry into the typed query value for
// its category. Warmup must produce the exact query a read tool would issue,
// down to the cache scope, or the preloaded entry sits under a key no real
// caller ever asks for. Unknown categories and unknown params are rejected
// so a typo in the settings file fails at startup instead of warming nothing.
func ForWarmup(category string, params map[string]interface{}) (interface{}, error) {
	switch category {
	case entities.EntityTypeCampaign:
		if _, ok := params["campaignId"]; ok {
			var q CampaignSummaryQuery
			if err := decodeParams(params, &q); err != nil {
				return nil, err
			}
			return q, nil
		}
		var q ListCampaignsQuery
		if err := decodeParams(params, &q); err != nil {
			return nil, err
		}
		return q, nil
	case entities.EntityTypeCreative:
		var q CreativePerformanceQuery
		if err := decodeParams(params, &q); err != nil {
			return nil, err
		}
		return q, nil
	case entities.EntityTypeBrandAccount:
		var q BrandOverviewQuery
		if err := decodeParams(params, &q); err != nil {
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("warmup: unknown category %q", category)
	}
}

func decodeParams(params map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("warmup: encode params: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("warmup: decode params: %w", err)
	}
	return nil
}
