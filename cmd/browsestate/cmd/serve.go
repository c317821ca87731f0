package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wesm/browsestate/internal/api"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the view controller over HTTP.

Endpoints (under /api/v1, authenticated when [server] api_key is set):
  GET  /views                    list views
  GET  /views/{view}             one view's definition
  GET  /views/{view}/state?...   decode the query string
  POST /views/{view}/actions     replay actions, return the resulting URL
  POST /views/{view}/selection   build a bulk action URL

Configure in config.toml:
  [server]
  api_port = 8080
  bind_addr = "127.0.0.1"
  api_key = "..."          # required for non-loopback binds

Use Ctrl+C to stop the server gracefully.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Server.ValidateSecure(); err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}

	apiServer := api.NewServer(cfg, svc, logger)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return apiServer.Shutdown(shutdownCtx)
	})

	fmt.Fprintf(cmd.OutOrStdout(), "browsestate API listening on http://%s (%d views)\n", cfg.Server.Addr(), len(svc.Views()))
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop.")

	if err := g.Wait(); err != nil {
		return err
	}
	return cmd.Context().Err()
}
