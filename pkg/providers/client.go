package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/httpx"
)

var (
	// ErrNotFound is returned when an indicator or resource does not
	// exist at the remote API (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrStatus is returned for any other non-OK HTTP status.
	ErrStatus = errors.New("unexpected http status")
)

// Client provides shared HTTP functionality for all provider fetchers:
// cached GET with JSON decoding. Responses are cached by URL so that
// repeated queries within the TTL window never hit the remote API.
type Client struct {
	transport httpx.Transport
	cache     cache.Cache
	logger    *log.Logger
}

// NewClient creates a Client over the given transport and response
// cache. Pass [cache.NewNull] to disable caching. A nil logger falls
// back to the default logger.
func NewClient(transport httpx.Transport, c cache.Cache, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{transport: transport, cache: c, logger: logger}
}

// Logger returns the client's logger for use by provider fetchers.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// FetchBody performs a cached GET and returns the raw response body.
// Cache hits skip the network entirely; misses go through the
// transport and store the body on success. Only OK responses are
// cached, so transient failures are retried on the next call.
func (c *Client) FetchBody(ctx context.Context, rawURL string) ([]byte, error) {
	if body, ok := c.cache.Get(ctx, rawURL); ok {
		return body, nil
	}

	resp, err := c.transport.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, rawURL, resp.Body)
	return resp.Body, nil
}

// FetchJSON performs a cached GET and JSON-decodes the body into v.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.FetchBody(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %d", ErrStatus, code)
	}
}

// FetchOptions carries the optional parameters common to every
// provider query.
type FetchOptions struct {
	// Countries holds ISO2 or ISO3 codes; empty means [DefaultCountry].
	Countries []string

	// Years is the optional year range pushed down to the API.
	Years YearFilter
}

// ResolvedCountries returns the normalized ISO3 list for the query.
func (o FetchOptions) ResolvedCountries() []string {
	return NormalizeCountries(o.Countries)
}

// URLEncode percent-encodes a string for use in URL query values.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
