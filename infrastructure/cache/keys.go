package cache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Scoped is implemented by parameter types that pertain to a single entity.
// The scope ID becomes part of the key prefix so that write invalidation can
// target all cached queries for that entity.
type Scoped interface {
	CacheScope() string
}

// KeyBuilder derives deterministic cache keys from a customer ID, a query
// category, and a parameter payload.
//
// Key layout: customer:category:scope:params. The first three components are
// escaped so a separator in the input cannot forge a component boundary; the
// parameter tail is base64url over canonical JSON, so two structurally equal
// parameter sets always serialize identically regardless of map key order.
type KeyBuilder struct{}

// NewKeyBuilder creates a key builder.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

const keySeparator = ":"

var componentEscaper = strings.NewReplacer("%", "%25", keySeparator, "%3A")

// BuildKey returns the cache key for (customerID, category, params).
// It fails only if customerID is empty or params cannot be serialized;
// callers treat either as "bypass the cache" rather than a request failure.
func (b *KeyBuilder) BuildKey(customerID, category string, params interface{}) (string, error) {
	if customerID == "" {
		return "", fmt.Errorf("customer ID must not be empty")
	}

	scope := ""
	if scoped, ok := params.(Scoped); ok {
		scope = scoped.CacheScope()
	}

	tail, err := canonicalJSON(params)
	if err != nil {
		return "", fmt.Errorf("serialize cache key params: %w", err)
	}

	return strings.Join([]string{
		componentEscaper.Replace(customerID),
		componentEscaper.Replace(category),
		componentEscaper.Replace(scope),
		base64.RawURLEncoding.EncodeToString(tail),
	}, keySeparator), nil
}

// EntityPrefix returns the key prefix shared by every cached query scoped to
// (customerID, entityType, entityID). Deleting by this prefix never touches
// another customer or another entity.
func (b *KeyBuilder) EntityPrefix(customerID, entityType, entityID string) string {
	return componentEscaper.Replace(customerID) + keySeparator +
		componentEscaper.Replace(entityType) + keySeparator +
		componentEscaper.Replace(entityID) + keySeparator
}

// CustomerPrefix returns the key prefix shared by every entry belonging to a
// customer.
func (b *KeyBuilder) CustomerPrefix(customerID string) string {
	return componentEscaper.Replace(customerID) + keySeparator
}

// canonicalJSON serializes params with a stable field order. A marshal
// round-trip through interface{} reduces structs and maps alike to maps,
// which encoding/json emits with sorted keys.
func canonicalJSON(params interface{}) ([]byte, error) {
	if params == nil {
		return []byte("null"), nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
