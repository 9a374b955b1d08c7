package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingCacheHooks struct {
	mu     sync.Mutex
	hits   int
	misses int
	sets   int
}

func (r *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits++
}

func (r *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
}

func (r *recordingCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Should not panic
	Fetch().OnFetchStart(ctx, "worldbank", "SP.POP.TOTL")
	Fetch().OnFetchComplete(ctx, "worldbank", "SP.POP.TOTL", 10, time.Second, nil)
	Cache().OnCacheHit(ctx, "http")
	Cache().OnCacheMiss(ctx, "http")
	Cache().OnCacheSet(ctx, "http", 1024)
	HTTP().OnRequest(ctx, "GET", "api.worldbank.org", "/v2/country")
	HTTP().OnResponse(ctx, "GET", "api.worldbank.org", "/v2/country", 200, time.Second)
	HTTP().OnError(ctx, "GET", "api.worldbank.org", "/v2/country", context.DeadlineExceeded)
}

func TestSetCacheHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "http")
	Cache().OnCacheMiss(ctx, "http")
	Cache().OnCacheMiss(ctx, "http")
	Cache().OnCacheSet(ctx, "http", 10)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.hits != 1 || rec.misses != 2 || rec.sets != 1 {
		t.Errorf("recorded hits=%d misses=%d sets=%d, want 1/2/1", rec.hits, rec.misses, rec.sets)
	}
}

func TestSetNilHooksKeepsPrevious(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "http")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.hits != 1 {
		t.Errorf("nil registration should keep previous hooks, hits = %d", rec.hits)
	}
}

func TestReset(t *testing.T) {
	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	Reset()

	Cache().OnCacheHit(context.Background(), "http")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.hits != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
