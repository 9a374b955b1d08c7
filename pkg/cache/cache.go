// Package cache provides the shared HTTP response cache used by all
// provider fetchers.
//
// The cache maps a fully resolved request URL (including query parameters)
// to the response body that URL returned. Two logically equivalent requests
// must therefore serialize to the same URL string to share an entry.
//
// The primary backend is [Memory], an in-process TTL map shared by every
// query execution in a session. [Null] disables caching entirely and is
// useful in tests or when fresh data is required.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a cached response body stays valid.
const DefaultTTL = 300 * time.Second

// Cache stores HTTP response bodies keyed by request URL.
//
// Implementations must be safe for concurrent use by multiple query
// executions. Storage is infallible by design: there is no persistent or
// remote backend, so operations do not return errors.
type Cache interface {
	// Get retrieves a cached body by key. A stale entry is treated as a
	// miss; the Memory backend additionally evicts it as a side effect of
	// the read.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a body under the given key, replacing any previous entry
	// and restarting its TTL.
	Set(ctx context.Context, key string, body []byte)

	// Delete removes a single entry. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string)

	// Clear removes all entries.
	Clear()

	// Len returns the number of stored entries, including any that have
	// expired but not yet been evicted by a read.
	Len() int
}
