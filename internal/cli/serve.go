package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nilebasin/sudandata/internal/server"
)

// shutdownGrace bounds how long in-flight requests may finish after a
// shutdown signal.
const shutdownGrace = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the fetchers as a JSON API.

The API exposes the same surface as the CLI under /v1: provider and
country registries, indicator search and catalogs, data queries and
cache invalidation. The server stops gracefully on SIGINT/SIGTERM.`,
		Example: `  sudandata serve
  sudandata serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.newClients()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cl.cfg.Server.Addr
			}

			transport := cl.transport
			srv := &http.Server{
				Addr:    addr,
				Handler: server.New(transport, cl.cache, c.Logger).Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("serving", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			c.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
