// Package cli implements the sudandata command-line interface.
//
// This package provides commands for fetching indicator data from the
// supported open-data providers, discovering indicators, listing the
// provider and country registries, and serving the same surface as a
// JSON API. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nilebasin/sudandata/internal/config"
	"github.com/nilebasin/sudandata/pkg/buildinfo"
	"github.com/nilebasin/sudandata/pkg/cache"
	"github.com/nilebasin/sudandata/pkg/httpx"
	"github.com/nilebasin/sudandata/pkg/providers/fao"
	"github.com/nilebasin/sudandata/pkg/providers/ilo"
	"github.com/nilebasin/sudandata/pkg/providers/unhcr"
	"github.com/nilebasin/sudandata/pkg/providers/who"
	"github.com/nilebasin/sudandata/pkg/providers/worldbank"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sudandata",
		Short:        "Sudandata queries open data about Sudan and its neighbors",
		Long:         `Sudandata is a CLI tool for fetching development, health, agriculture, displacement and labour statistics about Sudan and neighboring countries from the World Bank, WHO, FAO, UNHCR and ILO APIs through one uniform interface.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sudandata/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "bypass the response cache")

	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.indicatorsCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.providersCommand())
	root.AddCommand(c.countriesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// clients bundles the per-provider API clients behind one transport
// and response cache.
type clients struct {
	cfg       config.Config
	cache     cache.Cache
	transport httpx.Transport
	worldBank *worldbank.Client
	who       *who.Client
	fao       *fao.Client
	unhcr     *unhcr.Client
	ilo       *ilo.Client
}

// newClients loads configuration and builds the provider clients.
func (c *CLI) newClients() (*clients, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}

	backend := cfg.NewCache()
	if c.noCache {
		backend = cache.NewNull()
	}
	transport := httpx.NewClient(cfg.HTTPSettings())

	return &clients{
		cfg:       cfg,
		cache:     backend,
		transport: transport,
		worldBank: worldbank.NewClient(transport, backend, c.Logger),
		who:       who.NewClient(transport, backend, c.Logger),
		fao:       fao.NewClient(transport, backend, c.Logger),
		unhcr:     unhcr.NewClient(transport, backend, c.Logger),
		ilo:       ilo.NewClient(transport, backend, c.Logger),
	}, nil
}
