package cache

import "context"

// Null is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type Null struct{}

// NewNull creates a null cache.
func NewNull() Cache {
	return Null{}
}

// Get always returns a cache miss.
func (Null) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

// Set does nothing.
func (Null) Set(ctx context.Context, key string, body []byte) {}

// Delete does nothing.
func (Null) Delete(ctx context.Context, key string) {}

// Clear does nothing.
func (Null) Clear() {}

// Len always returns zero.
func (Null) Len() int { return 0 }

// Ensure Null implements Cache.
var _ Cache = Null{}
