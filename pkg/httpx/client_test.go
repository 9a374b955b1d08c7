package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.Timeout = 5 * time.Second
	return s
}

func TestClientGet(t *testing.T) {
	var gotUA, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(testSettings())
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Body = %q", resp.Body)
	}
	if !strings.HasPrefix(gotUA, "sudandata/") {
		t.Errorf("User-Agent = %q, want sudandata/... prefix", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestClientGetGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write([]byte(`{"compressed":true}`))
		zw.Close()
		// Served without Content-Encoding: some upstreams gzip regardless
		// of negotiation. The client must detect and decompress anyway.
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	client := NewClient(testSettings())
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(resp.Body) != `{"compressed":true}` {
		t.Errorf("Body = %q, want decompressed JSON", resp.Body)
	}
}

func TestClientGetNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testSettings())
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("non-200 should not be a transport error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestClientNoFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	s := testSettings()
	s.FollowRedirects = false
	client := NewClient(s)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302 when redirects are disabled", resp.StatusCode)
	}
}

func TestClientContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(testSettings())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Get(ctx, server.URL); err == nil {
		t.Error("expected error when context deadline passes")
	}
}

func TestTransportFunc(t *testing.T) {
	var called bool
	tr := TransportFunc(func(ctx context.Context, rawURL string) (*Response, error) {
		called = true
		return &Response{StatusCode: 200, Body: []byte("x")}, nil
	})

	resp, err := tr.Get(context.Background(), "https://example.org")
	if err != nil || !called || string(resp.Body) != "x" {
		t.Errorf("TransportFunc adapter misbehaved: resp=%v err=%v called=%v", resp, err, called)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", s.Timeout)
	}
	if s.MaxConcurrency != 32 {
		t.Errorf("MaxConcurrency = %d, want 32", s.MaxConcurrency)
	}
	if !s.KeepAlive || !s.UseCache || !s.FollowRedirects {
		t.Error("KeepAlive, UseCache and FollowRedirects should default to true")
	}
}
