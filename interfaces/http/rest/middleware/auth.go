// Package middleware provides the HTTP middleware of the tool surface:
// request logging, JWT authentication with rate limiting, and the cache
// warmup trigger that fires when a customer authenticates.
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"campaign-backend/pkg/auth"
)

// Preloader warms the query cache for a customer. Implemented by the cache
// preload service; called fire-and-forget, never blocks the request.
type Preloader interface {
	Preload(customerID string)
}

// AuthMiddleware throttles clients by IP, validates bearer tokens, enforces
// per-customer rate limits, and triggers cache warmup on successful
// authentication.
type AuthMiddleware struct {
	validator       *auth.JWTValidator
	ipLimiter       auth.RateLimiter
	customerLimiter auth.RateLimiter
	preloader       Preloader
	logger          *zap.Logger
}

// NewAuthMiddleware creates the middleware. Either limiter may be nil to
// skip that check; the preloader may be nil when warmup is disabled.
func NewAuthMiddleware(validator *auth.JWTValidator, ipLimiter, customerLimiter auth.RateLimiter, preloader Preloader, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator:       validator,
		ipLimiter:       ipLimiter,
		customerLimiter: customerLimiter,
		preloader:       preloader,
		logger:          logger,
	}
}

// Authenticate returns the chi middleware function.
func (m *AuthMiddleware) Authenticate() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The IP check runs before any token work so unauthenticated
			// floods are shed cheaply. RealIP upstream has already rewritten
			// RemoteAddr from the forwarding headers.
			if m.ipLimiter != nil {
				allowed, err := m.ipLimiter.Allow(r.Context(), clientIP(r))
				if err != nil {
					m.logger.Warn("ip rate limiter failed", zap.Error(err))
				} else if !allowed {
					respondAuthError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}

			token := extractBearerToken(r)
			if token == "" {
				respondAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := m.validator.ValidateToken(token)
			if err != nil {
				m.logger.Debug("token rejected", zap.Error(err))
				respondAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if m.customerLimiter != nil {
				allowed, err := m.customerLimiter.Allow(r.Context(), claims.CustomerID)
				if err != nil {
					m.logger.Warn("rate limiter failed", zap.Error(err))
				} else if !allowed {
					respondAuthError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}

			customer := &auth.CustomerContext{
				CustomerID: claims.CustomerID,
				Email:      claims.Email,
				Scopes:     claims.Scopes,
			}
			ctx := auth.SetCustomerInContext(r.Context(), customer)

			// Warm the analytics cache for this customer. Non-blocking;
			// the preloader debounces repeated triggers itself.
			if m.preloader != nil {
				m.preloader.Preload(claims.CustomerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clientIP returns the throttling key for a request. RemoteAddr is either a
// bare IP (rewritten by the RealIP middleware) or host:port straight from
// the listener.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
