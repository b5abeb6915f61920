package providers

import (
	"context"
)

// CacheProvider stores rendered metrics responses so repeated dashboard
// requests skip the aggregation queries until the entry expires. The API
// runs identically when no provider is configured.
type CacheProvider interface {
	// Get retrieves the cached payload for a key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload under a key with an expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a cached payload
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is cached
	Exists(ctx context.Context, key string) (bool, error)
}
