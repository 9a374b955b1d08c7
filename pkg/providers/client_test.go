package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/httpx"
)

func TestFetchBodyCachesSuccess(t *testing.T) {
	calls := 0
	transport := httpx.TransportFunc(func(ctx context.Context, rawURL string) (*httpx.Response, error) {
		calls++
		return &httpx.Response{StatusCode: 200, Body: []byte(`{"ok":true}`)}, nil
	})
	client := NewClient(transport, cache.NewMemory(time.Minute), nil)

	for i := 0; i < 3; i++ {
		body, err := client.FetchBody(context.Background(), "https://example.org/data")
		if err != nil {
			t.Fatalf("FetchBody: %v", err)
		}
		if string(body) != `{"ok":true}` {
			t.Fatalf("body = %q", body)
		}
	}
	if calls != 1 {
		t.Errorf("transport calls = %d, want 1 (cache should absorb repeats)", calls)
	}
}

func TestFetchBodyDoesNotCacheFailures(t *testing.T) {
	calls := 0
	transport := httpx.TransportFunc(func(ctx context.Context, rawURL string) (*httpx.Response, error) {
		calls++
		if calls == 1 {
			return &httpx.Response{StatusCode: 500}, nil
		}
		return &httpx.Response{StatusCode: 200, Body: []byte("later")}, nil
	})
	client := NewClient(transport, cache.NewMemory(time.Minute), nil)

	if _, err := client.FetchBody(context.Background(), "https://example.org/flaky"); !errors.Is(err, ErrStatus) {
		t.Fatalf("first fetch err = %v, want ErrStatus", err)
	}
	body, err := client.FetchBody(context.Background(), "https://example.org/flaky")
	if err != nil || string(body) != "later" {
		t.Fatalf("second fetch = %q, %v; want recovery after transient failure", body, err)
	}
}

func TestFetchBodyNotFound(t *testing.T) {
	transport := httpx.TransportFunc(func(ctx context.Context, rawURL string) (*httpx.Response, error) {
		return &httpx.Response{StatusCode: 404}, nil
	})
	client := NewClient(transport, cache.NewNull(), nil)

	if _, err := client.FetchBody(context.Background(), "https://example.org/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchJSON(t *testing.T) {
	transport := httpx.TransportFunc(func(ctx context.Context, rawURL string) (*httpx.Response, error) {
		return &httpx.Response{StatusCode: 200, Body: []byte(`{"name":"sudan"}`)}, nil
	})
	client := NewClient(transport, cache.NewNull(), nil)

	var out struct {
		Name string `json:"name"`
	}
	if err := client.FetchJSON(context.Background(), "https://example.org/json", &out); err != nil {
		t.Fatalf("FetchJSON: %v", err)
	}
	if out.Name != "sudan" {
		t.Errorf("Name = %q, want sudan", out.Name)
	}
}

func TestFetchJSONDecodeError(t *testing.T) {
	transport := httpx.TransportFunc(func(ctx context.Context, rawURL string) (*httpx.Response, error) {
		return &httpx.Response{StatusCode: 200, Body: []byte("<html>")}, nil
	})
	client := NewClient(transport, cache.NewNull(), nil)

	var out map[string]any
	if err := client.FetchJSON(context.Background(), "https://example.org/html", &out); err == nil {
		t.Error("expected decode error for non-JSON body")
	}
}

func TestFetchOptionsResolvedCountries(t *testing.T) {
	if got := (FetchOptions{}).ResolvedCountries(); len(got) != 1 || got[0] != "SDN" {
		t.Errorf("default countries = %v, want [SDN]", got)
	}
	got := FetchOptions{Countries: []string{"SD", "EGY", "XX"}}.ResolvedCountries()
	want := []string{"SDN", "EGY", "XX"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ResolvedCountries = %v, want %v", got, want)
			break
		}
	}
}
