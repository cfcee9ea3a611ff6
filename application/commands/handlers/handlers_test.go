package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-backend/application/commands"
	"campaign-backend/application/ports"
	"campaign-backend/domain/entities"
	apperrors "campaign-backend/pkg/errors"
)

type fakeGraphAPI struct {
	failWith error
	creative *entities.Creative
}

func (f *fakeGraphAPI) CreateCampaign(_ context.Context, _ string, draft ports.CampaignDraft) (*entities.Campaign, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &entities.Campaign{ID: "camp-new", Name: draft.Name, Status: entities.CampaignStatusDraft}, nil
}

func (f *fakeGraphAPI) UpdateCampaign(_ context.Context, _, campaignID string, _ ports.CampaignPatch) (*entities.Campaign, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &entities.Campaign{ID: campaignID}, nil
}

func (f *fakeGraphAPI) DeleteCampaign(context.Context, string, string) error {
	return f.failWith
}

func (f *fakeGraphAPI) CreateCreative(context.Context, string, ports.CreativeDraft) (*entities.Creative, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.creative, nil
}

func (f *fakeGraphAPI) UpdateCreative(_ context.Context, _, creativeID string, _ ports.CreativePatch) (*entities.Creative, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.creative != nil {
		return f.creative, nil
	}
	return &entities.Creative{ID: creativeID}, nil
}

func (f *fakeGraphAPI) UpdateBrandAccount(_ context.Context, _, accountID string, _ ports.BrandAccountPatch) (*entities.BrandAccount, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &entities.BrandAccount{ID: accountID}, nil
}

type invalidation struct {
	customerID, entityType, entityID string
}

type fakeInvalidator struct {
	calls []invalidation
}

func (f *fakeInvalidator) Invalidate(customerID, entityType, entityID string) int {
	f.calls = append(f.calls, invalidation{customerID, entityType, entityID})
	return 1
}

func TestUpdateCampaignInvalidatesAfterWrite(t *testing.T) {
	inv := &fakeInvalidator{}
	h := NewCampaignCommandHandler(&fakeGraphAPI{}, inv, zap.NewNop())

	status := entities.CampaignStatusPaused
	result, err := h.Handle(context.Background(), commands.UpdateCampaignCommand{
		CustomerID: "cust-1",
		CampaignID: "camp-7",
		Status:     &status,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, inv.calls, 1)
	assert.Equal(t, invalidation{"cust-1", entities.EntityTypeCampaign, "camp-7"}, inv.calls[0])
}

func TestFailedWriteDoesNotInvalidate(t *testing.T) {
	inv := &fakeInvalidator{}
	graph := &fakeGraphAPI{failWith: apperrors.NewExternalError("graph-api", assert.AnError)}
	h := NewCampaignCommandHandler(graph, inv, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.DeleteCampaignCommand{
		CustomerID: "cust-1",
		CampaignID: "camp-7",
	})
	require.Error(t, err)
	assert.Empty(t, inv.calls)
}

func TestCreativeWriteInvalidatesAssignedCampaigns(t *testing.T) {
	inv := &fakeInvalidator{}
	graph := &fakeGraphAPI{creative: &entities.Creative{
		ID:          "cr-1",
		CampaignIDs: []string{"camp-1", "camp-2"},
	}}
	h := NewCreativeCommandHandler(graph, inv, zap.NewNop())

	_, err := h.Handle(context.Background(), commands.UpdateCreativeCommand{
		CustomerID: "cust-1",
		CreativeID: "cr-1",
	})
	require.NoError(t, err)

	require.Len(t, inv.calls, 3)
	assert.Equal(t, invalidation{"cust-1", entities.EntityTypeCreative, "cr-1"}, inv.calls[0])
	assert.Equal(t, invalidation{"cust-1", entities.EntityTypeCampaign, "camp-1"}, inv.calls[1])
	assert.Equal(t, invalidation{"cust-1", entities.EntityTypeCampaign, "camp-2"}, inv.calls[2])
}

func TestBrandAccountUpdate(t *testing.T) {
	inv := &fakeInvalidator{}
	h := NewBrandAccountCommandHandler(&fakeGraphAPI{}, inv, zap.NewNop())

	name := "Acme Rebrand"
	result, err := h.Handle(context.Background(), commands.UpdateBrandAccountCommand{
		CustomerID:     "cust-1",
		BrandAccountID: "brand-3",
		Name:           &name,
	})
	require.NoError(t, err)

	account, ok := result.(*entities.BrandAccount)
	require.True(t, ok)
	assert.Equal(t, "brand-3", account.ID)
	require.Len(t, inv.calls, 1)
	assert.Equal(t, invalidation{"cust-1", entities.EntityTypeBrandAccount, "brand-3"}, inv.calls[0])
}

func TestCommandValidation(t *testing.T) {
	err := commands.CreateCampaignCommand{
		CustomerID:     "cust-1",
		BrandAccountID: "brand-1",
		Name:           "No Budget",
		BudgetTotal:    0,
		Currency:       "EUR",
	}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budgettotal")

	err = commands.CreateCampaignCommand{
		CustomerID:     "cust-1",
		BrandAccountID: "brand-1",
		Name:           "OK",
		BudgetTotal:    100,
		Currency:       "EURO",
	}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currency")
}
