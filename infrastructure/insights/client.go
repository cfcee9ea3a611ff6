// Package insights implements the raw client for the metered analytical
// query backend. Every call here costs money; the caching layer in
// infrastructure/cache sits in front of this client in production wiring.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "campaign-backend/pkg/errors"
	"campaign-backend/pkg/observability"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultQueryTimeout = 30 * time.Second

// Config holds the insights backend connection settings.
type Config struct {
	BaseURL      string
	APIKey       string
	QueryTimeout time.Duration
	RetryMax     int
}

// Client issues analytical queries over HTTP, with bounded retries below a
// circuit breaker. The breaker trips when the backend fails persistently so
// a broken (and billed) backend is not hammered.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Collector
	logger     *zap.Logger
}

// queryRequest is the wire format for one analytical query.
type queryRequest struct {
	CustomerID string      `json:"customer_id"`
	Category   string      `json:"category"`
	Params     interface{} `json:"params,omitempty"`
}

// queryResponse is the wire format of a successful query result.
type queryResponse struct {
	Data interface{} `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewClient creates an insights client. metrics may be nil.
func NewClient(cfg Config, metrics *observability.Collector, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.Logger = nil
	// Hand back the final response once retries run out; the default handler
	// discards it, and the status mapping below needs it.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "insights",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// Caller mistakes are not backend failures; only availability
			// problems should trip the breaker.
			if err == nil || apperrors.IsValidation(err) || apperrors.IsNotFound(err) {
				return true
			}
			return false
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: retryClient.StandardClient(),
		breaker:    breaker,
		metrics:    metrics,
		logger:     logger,
	}
}

// Query runs one analytical query and returns the decoded result payload.
// Failures (network, authorization, malformed query, timeout, open breaker)
// are returned as errors; callers above this client decide caching, and they
// must never cache an error.
func (c *Client) Query(ctx context.Context, customerID, category string, params interface{}) (interface{}, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doQuery(ctx, customerID, category, params)
	})

	if c.metrics != nil {
		c.metrics.ObserveBackendQuery(category, err, time.Since(start))
	}

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.NewUnavailableError("insights").WithCause(err)
		}
		return nil, err
	}
	return result, nil
}

func (c *Client) doQuery(ctx context.Context, customerID, category string, params interface{}) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(queryRequest{
		CustomerID: customerID,
		Category:   category,
		Params:     params,
	})
	if err != nil {
		return nil, apperrors.NewValidationError("query parameters are not serializable").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/query", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("build insights request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError("insights query").WithCause(err)
		}
		return nil, apperrors.NewExternalError("insights", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewExternalError("insights", fmt.Errorf("decode response: %w", err))
	}

	return decoded.Data, nil
}

func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorResponse
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
		return apperrors.NewNotFoundError("query target")
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return apperrors.NewTimeoutError("insights query")
	default:
		return apperrors.NewExternalError("insights", fmt.Errorf("status %d: %s", resp.StatusCode, message))
	}
}
