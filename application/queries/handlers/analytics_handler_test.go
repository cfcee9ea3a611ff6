package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-backend/application/queries"
	"campaign-backend/application/queries/bus"
	"campaign-backend/domain/entities"
)

type capturingQuerier struct {
	customerID string
	category   string
	params     interface{}
	result     interface{}
	err        error
}

func (c *capturingQuerier) Query(_ context.Context, customerID, category string, params interface{}) (interface{}, error) {
	c.customerID = customerID
	c.category = category
	c.params = params
	return c.result, c.err
}

func TestCampaignSummaryRouting(t *testing.T) {
	querier := &capturingQuerier{result: map[string]interface{}{"impressions": 1200.0, "spend": 34.5}}
	h := NewAnalyticsQueryHandler(querier)

	query := queries.CampaignSummaryQuery{CustomerID: "cust-1", CampaignID: "camp-1", Window: queries.Window7Days}
	result, err := h.Handle(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "cust-1", querier.customerID)
	assert.Equal(t, entities.EntityTypeCampaign, querier.category)
	assert.Equal(t, query, querier.params)

	r, ok := result.(*queries.Result)
	require.True(t, ok)
	assert.Contains(t, r.Text, "impressions: 1200")
	assert.Contains(t, r.Text, "spend: 34.50")
}

func TestListCampaignsRendersRows(t *testing.T) {
	querier := &capturingQuerier{result: []interface{}{
		map[string]interface{}{"name": "Spring", "spend": 10.0},
		map[string]interface{}{"name": "Summer", "spend": 20.0},
	}}
	h := NewAnalyticsQueryHandler(querier)

	result, err := h.Handle(context.Background(), queries.ListCampaignsQuery{CustomerID: "cust-1"})
	require.NoError(t, err)

	r := result.(*queries.Result)
	assert.Contains(t, r.Text, "Spring")
	assert.Contains(t, r.Text, "2 row(s)")
}

func TestBackendErrorPropagates(t *testing.T) {
	querier := &capturingQuerier{err: assert.AnError}
	h := NewAnalyticsQueryHandler(querier)

	_, err := h.Handle(context.Background(), queries.BrandOverviewQuery{
		CustomerID:     "cust-1",
		BrandAccountID: "brand-1",
		Window:         queries.Window30Days,
	})
	require.ErrorIs(t, err, assert.AnError)
}

func TestQueryBusDispatch(t *testing.T) {
	querier := &capturingQuerier{result: map[string]interface{}{}}
	b := bus.NewQueryBus()
	require.NoError(t, b.Register(queries.CreativePerformanceQuery{}, NewAnalyticsQueryHandler(querier)))

	_, err := b.Ask(context.Background(), queries.CreativePerformanceQuery{
		CustomerID: "cust-1",
		CreativeID: "cr-1",
		Window:     queries.Window90Days,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.EntityTypeCreative, querier.category)

	// Validation failures never reach the handler.
	_, err = b.Ask(context.Background(), queries.CreativePerformanceQuery{CustomerID: "cust-1"})
	require.Error(t, err)
}
