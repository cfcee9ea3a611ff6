package auth

import (
	"context"

	"campaign-backend/pkg/errors"
)

type contextKey string

const customerContextKey contextKey = "customer_context"

// CustomerContext carries the authenticated caller's identity through a request.
type CustomerContext struct {
	CustomerID string
	Email      string
	Scopes     []string
}

// HasScope reports whether the caller was granted the given scope.
func (c *CustomerContext) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// SetCustomerInContext stores the customer context on a request context.
func SetCustomerInContext(ctx context.Context, customer *CustomerContext) context.Context {
	return context.WithValue(ctx, customerContextKey, customer)
}

// GetCustomerFromContext extracts the customer context set by the auth middleware.
func GetCustomerFromContext(ctx context.Context) (*CustomerContext, error) {
	customer, ok := ctx.Value(customerContextKey).(*CustomerContext)
	if !ok || customer == nil {
		return nil, errors.NewUnauthorizedError("no authenticated customer in context")
	}
	return customer, nil
}
