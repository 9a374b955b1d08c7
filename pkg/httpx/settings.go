package httpx

import (
	"time"

	"github.com/nilebasin/sudandata/pkg/buildinfo"
)

// Defaults for transport settings when neither config file nor environment
// provides a value.
const (
	// DefaultTimeout bounds connect, read and write for one request.
	// Provider endpoints are slow; 90 seconds matches their worst case.
	DefaultTimeout = 90 * time.Second

	// DefaultMaxConcurrency caps connections per upstream host.
	DefaultMaxConcurrency = 32
)

// Settings holds the transport configuration for one query execution.
//
// Settings are read once from ambient configuration before a query starts
// and then passed as an immutable value into every fetch call of that
// query, so they are safe to share read-only across goroutines.
type Settings struct {
	Timeout         time.Duration // per-request timeout
	KeepAlive       bool          // reuse connections across requests
	Proxy           string        // proxy URL, empty for direct
	ProxyUsername   string        // proxy basic-auth user
	ProxyPassword   string        // proxy basic-auth password
	UserAgent       string        // User-Agent header sent on every request
	MaxConcurrency  int           // max connections per upstream host
	UseCache        bool          // consult the shared response cache
	FollowRedirects bool          // follow 3xx responses
}

// DefaultSettings returns the settings used when no configuration is present.
func DefaultSettings() Settings {
	return Settings{
		Timeout:         DefaultTimeout,
		KeepAlive:       true,
		UserAgent:       DefaultUserAgent(),
		MaxConcurrency:  DefaultMaxConcurrency,
		UseCache:        true,
		FollowRedirects: true,
	}
}

// DefaultUserAgent returns the normalized User-Agent string identifying
// this client and its build.
func DefaultUserAgent() string {
	return "sudandata/" + buildinfo.Version
}
