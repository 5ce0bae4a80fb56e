package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	var upload bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)
			go func() {
				select {
				case <-sigChan:
					logger.Info("Received interrupt signal, shutting down")
					cancel()
				case <-ctx.Done():
				}
			}()

			store, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}
			logSummary(cfg, store)

			coordinator, closeUploader, err := newCoordinator(ctx, cfg, upload || cfg.Export.Upload.Enabled())
			if err != nil {
				return err
			}
			defer closeUploader()

			return server.New(store, cfg, coordinator).ListenAndServe(ctx)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&upload, "upload", false, "Publish every export to the configured bucket")
	return serveCmd
}
