package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "campaign-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		QueryTimeout: 2 * time.Second,
	}, nil, nil)
	return server, client
}

func TestQuerySuccess(t *testing.T) {
	var gotAuth atomic.Value
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))

		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cust1", req.CustomerID)
		assert.Equal(t, "campaign", req.Category)

		json.NewEncoder(w).Encode(queryResponse{
			Data: []map[string]interface{}{{"name": "Q4 Launch"}},
		})
	})

	result, err := client.Query(context.Background(), "cust1", "campaign", map[string]interface{}{"id": "c1"})
	require.NoError(t, err)

	rows, ok := result.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "Q4 Launch", rows[0].(map[string]interface{})["name"])
	assert.Equal(t, "Bearer test-key", gotAuth.Load())
}

func TestQueryErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		errType apperrors.ErrorType
	}{
		{"bad request", http.StatusBadRequest, `{"message":"unknown dimension"}`, apperrors.ErrorTypeValidation},
		{"unauthorized", http.StatusUnauthorized, `{"message":"bad token"}`, apperrors.ErrorTypeUnauthorized},
		{"not found", http.StatusNotFound, `{}`, apperrors.ErrorTypeNotFound},
		{"gateway timeout", http.StatusGatewayTimeout, `{}`, apperrors.ErrorTypeTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.Query(context.Background(), "cust1", "campaign", nil)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tc.errType), "expected %s, got %v", tc.errType, err)
		})
	}
}

func TestStatusMappingSurvivesRetries(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		QueryTimeout: 2 * time.Second,
		RetryMax:     1,
	}, nil, nil)

	_, err := client.Query(context.Background(), "cust1", "campaign", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err), "expected timeout error, got %v", err)
	assert.Equal(t, int64(2), calls.Load(), "5xx responses should be retried once")
}

func TestQueryTimeout(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client.timeout = 50 * time.Millisecond

	_, err := client.Query(context.Background(), "cust1", "campaign", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err), "expected timeout error, got %v", err)
}

func TestBreakerOpensOnPersistentFailure(t *testing.T) {
	var calls atomic.Int64
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Drive the breaker past its failure threshold.
	for i := 0; i < 10; i++ {
		_, err := client.Query(context.Background(), "cust1", "campaign", nil)
		require.Error(t, err)
	}

	_, err := client.Query(context.Background(), "cust1", "campaign", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable), "breaker should be open, got %v", err)
}

func TestValidationErrorsDoNotTripBreaker(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad query"}`))
	})

	for i := 0; i < 10; i++ {
		_, err := client.Query(context.Background(), "cust1", "campaign", nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "breaker must stay closed for caller mistakes, got %v", err)
	}
}
