// Package graphapi implements the client for the external graph-query API
// that owns campaign, creative, and brand account records. The write path of
// every tool goes through this client; reads of aggregated data go through
// the insights backend instead.
package graphapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"campaign-backend/application/ports"
	"campaign-backend/domain/entities"
	apperrors "campaign-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 15 * time.Second

// Config holds graph API connection settings.
type Config struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	RetryMax       int
}

// Client talks to the graph API over HTTP with bounded retries.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a graph API client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.Logger = nil
	// Hand back the final response once retries run out; the default handler
	// discards it, and statusError needs it to classify the failure.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: retryClient.StandardClient(),
		logger:     logger,
	}
}

var _ ports.GraphAPI = (*Client)(nil)

// CreateCampaign creates a campaign under the customer's brand account.
func (c *Client) CreateCampaign(ctx context.Context, customerID string, draft ports.CampaignDraft) (*entities.Campaign, error) {
	var campaign entities.Campaign
	err := c.do(ctx, http.MethodPost, "/v1/campaigns", customerID, map[string]interface{}{
		"brandAccountId": draft.BrandAccountID,
		"name":           draft.Name,
		"budgetTotal":    draft.BudgetTotal,
		"currency":       draft.Currency,
		"startDate":      draft.StartDate,
		"endDate":        draft.EndDate,
	}, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// UpdateCampaign applies a partial update to a campaign.
func (c *Client) UpdateCampaign(ctx context.Context, customerID, campaignID string, patch ports.CampaignPatch) (*entities.Campaign, error) {
	body := map[string]interface{}{}
	putIfSet(body, "name", patch.Name)
	putIfSet(body, "status", patch.Status)
	putIfSet(body, "budgetTotal", patch.BudgetTotal)
	putIfSet(body, "startDate", patch.StartDate)
	putIfSet(body, "endDate", patch.EndDate)

	var campaign entities.Campaign
	err := c.do(ctx, http.MethodPatch, "/v1/campaigns/"+campaignID, customerID, body, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// DeleteCampaign archives a campaign.
func (c *Client) DeleteCampaign(ctx context.Context, customerID, campaignID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/campaigns/"+campaignID, customerID, nil, nil)
}

// CreateCreative registers a new creative asset.
func (c *Client) CreateCreative(ctx context.Context, customerID string, draft ports.CreativeDraft) (*entities.Creative, error) {
	var creative entities.Creative
	err := c.do(ctx, http.MethodPost, "/v1/creatives", customerID, map[string]interface{}{
		"brandAccountId": draft.BrandAccountID,
		"name":           draft.Name,
		"format":         draft.Format,
		"assetUrl":       draft.AssetURL,
		"campaignIds":    draft.CampaignIDs,
	}, &creative)
	if err != nil {
		return nil, err
	}
	return &creative, nil
}

// UpdateCreative applies a partial update to a creative.
func (c *Client) UpdateCreative(ctx context.Context, customerID, creativeID string, patch ports.CreativePatch) (*entities.Creative, error) {
	body := map[string]interface{}{}
	putIfSet(body, "name", patch.Name)
	putIfSet(body, "status", patch.Status)
	putIfSet(body, "assetUrl", patch.AssetURL)
	putIfSet(body, "campaignIds", patch.CampaignIDs)

	var creative entities.Creative
	err := c.do(ctx, http.MethodPatch, "/v1/creatives/"+creativeID, customerID, body, &creative)
	if err != nil {
		return nil, err
	}
	return &creative, nil
}

// UpdateBrandAccount applies a partial update to a brand account.
func (c *Client) UpdateBrandAccount(ctx context.Context, customerID, accountID string, patch ports.BrandAccountPatch) (*entities.BrandAccount, error) {
	body := map[string]interface{}{}
	putIfSet(body, "name", patch.Name)
	putIfSet(body, "advertiserDomains", patch.AdvertiserDomains)

	var account entities.BrandAccount
	err := c.do(ctx, http.MethodPatch, "/v1/brand-accounts/"+accountID, customerID, body, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// do issues one request and decodes the response into out (skipped when out
// is nil).
func (c *Client) do(ctx context.Context, method, path, customerID string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewValidationError("request body is not serializable").WithCause(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError("build graph API request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Customer-ID", customerID)
	// One key per logical write; retries reuse it so the graph API can
	// deduplicate replayed mutations.
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperrors.NewTimeoutError("graph API request").WithCause(err)
		}
		return apperrors.NewExternalError("graph-api", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("graph-api", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)
	message := body.Message
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.NewValidationError(message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewUnauthorizedError(message)
	case http.StatusNotFound:
		return apperrors.NewNotFoundError("entity")
	case http.StatusConflict:
		return apperrors.NewValidationError(message).WithCode("CONFLICT")
	default:
		return apperrors.NewExternalError("graph-api", fmt.Errorf("status %d: %s", resp.StatusCode, message))
	}
}

// putIfSet adds a patch field to the request body when it was provided.
func putIfSet[T any](body map[string]interface{}, field string, value *T) {
	if value != nil {
		body[field] = *value
	}
}
