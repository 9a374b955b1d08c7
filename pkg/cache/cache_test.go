package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour)

	tests := []struct {
		name string
		key  string
		body string
	}{
		{"plain url", "https://api.worldbank.org/v2/country/SDN", `[{"page":1}]`},
		{"url with query", "https://ghoapi.azureedge.net/api/X?$filter=SpatialDim eq 'SDN'", `{"value":[]}`},
		{"empty body", "https://api.unhcr.org/population/v1/refugees/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Set(ctx, tt.key, []byte(tt.body))

			got, ok := c.Get(ctx, tt.key)
			if !ok {
				t.Fatal("Get returned miss for freshly set key")
			}
			if string(got) != tt.body {
				t.Errorf("Get = %q, want %q", got, tt.body)
			}
		})
	}
}

func TestMemoryMiss(t *testing.T) {
	c := NewMemory(time.Hour)
	if _, ok := c.Get(context.Background(), "missing"); ok {
		t.Error("Get returned hit for missing key")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()

	now := time.Unix(1700000000, 0)
	c := NewMemory(300*time.Second, WithClock(func() time.Time { return now }))

	c.Set(ctx, "key", []byte("body"))

	// Just inside the TTL: still a hit.
	now = now.Add(300 * time.Second)
	if _, ok := c.Get(ctx, "key"); !ok {
		t.Fatal("entry at exactly TTL should still be valid")
	}

	// Past the TTL: miss, and the entry is evicted by the read.
	now = now.Add(time.Second)
	if _, ok := c.Get(ctx, "key"); ok {
		t.Fatal("entry past TTL should be a miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be evicted on read, Len = %d", c.Len())
	}

	// Subsequent Get before any Put is still a miss.
	if _, ok := c.Get(ctx, "key"); ok {
		t.Error("entry should stay absent after eviction")
	}
}

func TestMemorySetRestartsTTL(t *testing.T) {
	ctx := context.Background()

	now := time.Unix(1700000000, 0)
	c := NewMemory(300*time.Second, WithClock(func() time.Time { return now }))

	c.Set(ctx, "key", []byte("old"))
	now = now.Add(200 * time.Second)
	c.Set(ctx, "key", []byte("new"))
	now = now.Add(200 * time.Second)

	got, ok := c.Get(ctx, "key")
	if !ok {
		t.Fatal("re-set entry should still be valid 200s after the second Set")
	}
	if string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}
}

func TestMemoryDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))

	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("deleted key should be a miss")
	}
	if _, ok := c.Get(ctx, "b"); !ok {
		t.Error("Delete should not affect other keys")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}

	// Delete on a missing key is a no-op.
	c.Delete(ctx, "never-existed")
}

func TestMemoryConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%4)
			for j := 0; j < 100; j++ {
				c.Set(ctx, key, []byte("body"))
				c.Get(ctx, key)
				c.Len()
			}
		}()
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}
}

func TestNull(t *testing.T) {
	ctx := context.Background()
	c := NewNull()

	c.Set(ctx, "key", []byte("body"))
	if _, ok := c.Get(ctx, "key"); ok {
		t.Error("Null cache should never store data")
	}
	if c.Len() != 0 {
		t.Error("Null cache Len should be 0")
	}
	c.Delete(ctx, "key")
	c.Clear()
}
