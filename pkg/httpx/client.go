// Package httpx implements the HTTP transport used by the provider
// fetchers: a thin client over net/http that applies the per-query
// [Settings] (timeout, proxy, redirect policy, User-Agent) and hands back
// decompressed response bodies.
//
// All provider traffic is plain GET. POST is deliberately unsupported.
package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nilebasin/sudandata/pkg/observability"
)

// Response is the outcome of a completed HTTP request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs HTTP GET requests. It is the seam the provider
// fetchers depend on; tests substitute a fake implementation.
type Transport interface {
	Get(ctx context.Context, rawURL string) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, rawURL string) (*Response, error)

// Get calls f.
func (f TransportFunc) Get(ctx context.Context, rawURL string) (*Response, error) {
	return f(ctx, rawURL)
}

// Client is the production Transport backed by net/http.
type Client struct {
	settings Settings
	http     *http.Client
}

// NewClient builds a Client honoring the given settings.
func NewClient(settings Settings) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:   settings.MaxConcurrency,
		DisableKeepAlives: !settings.KeepAlive,
		// Bodies are decompressed explicitly in Get so that upstreams that
		// gzip unconditionally are handled the same as negotiated ones.
		DisableCompression: true,
	}
	if settings.Proxy != "" {
		if proxyURL, err := url.Parse(settings.Proxy); err == nil {
			if settings.ProxyUsername != "" {
				proxyURL.User = url.UserPassword(settings.ProxyUsername, settings.ProxyPassword)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
			if proxyURL.User != nil {
				cred := base64.StdEncoding.EncodeToString([]byte(proxyURL.User.String()))
				transport.ProxyConnectHeader = http.Header{
					"Proxy-Authorization": {"Basic " + cred},
				}
			}
		}
	}

	client := &http.Client{
		Timeout:   settings.Timeout,
		Transport: transport,
	}
	if !settings.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{settings: settings, http: client}
}

// Settings returns the settings this client was built with.
func (c *Client) Settings() Settings {
	return c.settings
}

// Get performs a GET request against rawURL and returns the status,
// headers and decompressed body. Non-2xx statuses are not errors here;
// callers decide how to treat them.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.settings.UserAgent)
	req.Header.Set("Accept", "application/json")

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if decompressed, err := gunzip(body); err == nil {
		body = decompressed
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// gzipMagic is the two-byte signature of a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// gunzip decompresses body if it carries the gzip signature.
// Returns an error for non-gzip input so callers can keep the original.
func gunzip(body []byte) ([]byte, error) {
	if !bytes.HasPrefix(body, gzipMagic) {
		return nil, fmt.Errorf("not gzip data")
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// Ensure Client implements Transport.
var _ Transport = (*Client)(nil)
