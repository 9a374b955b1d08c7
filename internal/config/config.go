// Package config loads tool configuration from a TOML file with
// environment variable overrides.
//
// The file lives at $XDG_CONFIG_HOME/sudandata/config.toml (via
// os.UserConfigDir). A missing file is not an error; defaults apply.
// Environment variables with the SUDANDATA_ prefix override file
// values, so deployments can configure the proxy or timeout without
// touching disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/httpx"
)

// Config is the on-disk configuration shape.
type Config struct {
	HTTP   HTTPConfig   `toml:"http"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// HTTPConfig configures the outbound transport.
type HTTPConfig struct {
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	KeepAlive       bool   `toml:"keep_alive"`
	Proxy           string `toml:"proxy"`
	ProxyUsername   string `toml:"proxy_username"`
	ProxyPassword   string `toml:"proxy_password"`
	UserAgent       string `toml:"user_agent"`
	MaxConcurrency  int    `toml:"max_concurrency"`
	FollowRedirects bool   `toml:"follow_redirects"`
}

// CacheConfig configures the in-memory response cache.
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	TTLSeconds int  `toml:"ttl_seconds"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			TimeoutSeconds:  int(httpx.DefaultTimeout / time.Second),
			KeepAlive:       true,
			UserAgent:       httpx.DefaultUserAgent(),
			MaxConcurrency:  httpx.DefaultMaxConcurrency,
			FollowRedirects: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: int(cache.DefaultTTL / time.Second),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sudandata", "config.toml"), nil
}

// Load reads the config file at path, falling back to [DefaultPath]
// when path is empty, then applies environment overrides. A missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			applyEnv(&cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides file values from SUDANDATA_* variables.
func applyEnv(cfg *Config) {
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setInt("SUDANDATA_HTTP_TIMEOUT", &cfg.HTTP.TimeoutSeconds)
	setBool("SUDANDATA_HTTP_KEEP_ALIVE", &cfg.HTTP.KeepAlive)
	setStr("SUDANDATA_HTTP_PROXY", &cfg.HTTP.Proxy)
	setStr("SUDANDATA_HTTP_PROXY_USERNAME", &cfg.HTTP.ProxyUsername)
	setStr("SUDANDATA_HTTP_PROXY_PASSWORD", &cfg.HTTP.ProxyPassword)
	setStr("SUDANDATA_USER_AGENT", &cfg.HTTP.UserAgent)
	setInt("SUDANDATA_HTTP_MAX_CONCURRENCY", &cfg.HTTP.MaxConcurrency)
	setBool("SUDANDATA_HTTP_FOLLOW_REDIRECTS", &cfg.HTTP.FollowRedirects)
	setBool("SUDANDATA_CACHE_ENABLED", &cfg.Cache.Enabled)
	setInt("SUDANDATA_CACHE_TTL", &cfg.Cache.TTLSeconds)
	setStr("SUDANDATA_SERVER_ADDR", &cfg.Server.Addr)
}

// HTTPSettings converts the config to transport settings.
func (c Config) HTTPSettings() httpx.Settings {
	s := httpx.DefaultSettings()
	if c.HTTP.TimeoutSeconds > 0 {
		s.Timeout = time.Duration(c.HTTP.TimeoutSeconds) * time.Second
	}
	s.KeepAlive = c.HTTP.KeepAlive
	s.Proxy = c.HTTP.Proxy
	s.ProxyUsername = c.HTTP.ProxyUsername
	s.ProxyPassword = c.HTTP.ProxyPassword
	if c.HTTP.UserAgent != "" {
		s.UserAgent = c.HTTP.UserAgent
	}
	if c.HTTP.MaxConcurrency > 0 {
		s.MaxConcurrency = c.HTTP.MaxConcurrency
	}
	s.UseCache = c.Cache.Enabled
	s.FollowRedirects = c.HTTP.FollowRedirects
	return s
}

// CacheTTL returns the configured response cache TTL.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTLSeconds <= 0 {
		return cache.DefaultTTL
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// NewCache builds the response cache backend the config asks for.
func (c Config) NewCache() cache.Cache {
	if !c.Cache.Enabled {
		return cache.NewNull()
	}
	return cache.NewMemory(c.CacheTTL())
}
