package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-backend/pkg/auth"
)

const testSecret = "middleware-test-secret"

type recordingPreloader struct {
	mu        sync.Mutex
	customers []string
}

func (p *recordingPreloader) Preload(customerID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customers = append(p.customers, customerID)
}

func newValidator(t *testing.T) *auth.JWTValidator {
	t.Helper()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
	})
	require.NoError(t, err)
	return validator
}

func signedToken(t *testing.T, customerID string) string {
	t.Helper()
	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
	})
	require.NoError(t, err)
	token, err := generator.GenerateToken(customerID, "", nil)
	require.NoError(t, err)
	return token
}

func serveAuthenticated(m *AuthMiddleware, token, remoteAddr string) *httptest.ResponseRecorder {
	handler := m.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/", nil)
	req.RemoteAddr = remoteAddr
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIPLimitShedsUnauthenticatedTraffic(t *testing.T) {
	ipLimiter := auth.NewTokenBucketLimiter(2, time.Hour)
	m := NewAuthMiddleware(newValidator(t), ipLimiter, nil, nil, zap.NewNop())

	// No token at all: the first two requests make it to token validation,
	// the third is shed by the IP limiter before any token work.
	for i := 0; i < 2; i++ {
		rec := serveAuthenticated(m, "", "10.0.0.1:4242")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := serveAuthenticated(m, "", "10.0.0.1:4242")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Another address has its own bucket.
	rec = serveAuthenticated(m, "", "10.0.0.2:4242")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIPLimitKeyedByBareAddress(t *testing.T) {
	ipLimiter := auth.NewTokenBucketLimiter(1, time.Hour)
	m := NewAuthMiddleware(newValidator(t), ipLimiter, nil, nil, zap.NewNop())

	rec := serveAuthenticated(m, "", "10.0.0.1:1000")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Same client on a new source port still counts against the same bucket.
	rec = serveAuthenticated(m, "", "10.0.0.1:2000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCustomerLimitAppliesAfterValidation(t *testing.T) {
	customerLimiter := auth.NewTokenBucketLimiter(1, time.Hour)
	m := NewAuthMiddleware(newValidator(t), nil, customerLimiter, nil, zap.NewNop())
	token := signedToken(t, "cust-1")

	rec := serveAuthenticated(m, token, "10.0.0.1:4242")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveAuthenticated(m, token, "10.0.0.1:4242")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// The budget belongs to the customer, not the address.
	rec = serveAuthenticated(m, signedToken(t, "cust-2"), "10.0.0.1:4242")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticationTriggersPreload(t *testing.T) {
	preloader := &recordingPreloader{}
	m := NewAuthMiddleware(newValidator(t), nil, nil, preloader, zap.NewNop())

	rec := serveAuthenticated(m, signedToken(t, "cust-1"), "10.0.0.1:4242")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cust-1"}, preloader.customers)

	rec = serveAuthenticated(m, "not-a-token", "10.0.0.1:4242")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Len(t, preloader.customers, 1, "failed authentication must not warm the cache")
}
