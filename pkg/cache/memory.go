package cache

import (
	"context"
	"sync"
	"time"

	"github.com/nilebasin/sudandata/pkg/observability"
)

// entry wraps a cached body with its creation time.
type entry struct {
	body    []byte
	created time.Time
}

// Memory is an in-process response cache with per-entry TTL expiry.
//
// Entries live from Set until either Clear, Delete, or a Get that finds
// them older than the TTL. Reads mutate: an expired entry is removed by
// the Get that observes it, so repeated Gets after expiry stay misses
// without waiting for any background sweeper (there is none).
//
// The map is unbounded. That is acceptable because the cache lives for a
// single process session and provider responses are bounded in practice.
// All operations are guarded by a single mutex; critical sections are
// short and contention between query executions is expected to be low.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock replaces the time source used for entry creation and expiry
// checks. Tests use this to simulate TTL elapse without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates a Memory cache with the given TTL.
// A ttl of 0 or less falls back to [DefaultTTL].
func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves a cached body. An entry older than the TTL is evicted and
// reported as a miss.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "http")
		return nil, false
	}
	if m.now().Sub(e.created) > m.ttl {
		delete(m.entries, key)
		observability.Cache().OnCacheMiss(ctx, "http")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "http")
	return e.body, true
}

// Set stores a body under key, restarting its TTL.
func (m *Memory) Set(ctx context.Context, key string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{body: body, created: m.now()}
	observability.Cache().OnCacheSet(ctx, "http", len(body))
}

// Delete removes a single entry.
func (m *Memory) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear removes all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Ensure Memory implements Cache.
var _ Cache = (*Memory)(nil)
