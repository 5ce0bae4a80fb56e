package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/config"
	"bench-dashboard/internal/database"
	"bench-dashboard/internal/export"
	"bench-dashboard/internal/ingest"
	"bench-dashboard/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

var (
	configFile string
	logLevel   string
)

func loadEnvironment() {
	logger := logging.GetLogger()

	envFile := ".env"
	if _, err := os.Stat(envFile); err != nil {
		execPath, err := os.Executable()
		if err != nil {
			return
		}
		envFile = filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(envFile); err != nil {
			return
		}
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
		return
	}
	logger.WithField("file", envFile).Debug("Loaded environment variables")
}

// loadConfig reads the -c file, or the defaults when none was given. The
// configured log level applies unless --log-level overrides it.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevel == "" {
		if err := logging.SetLogLevel(cfg.Dashboard.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	return cfg, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (*benchmark.Store, error) {
	src, closeSource, err := database.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer closeSource()
	return ingest.Build(ctx, src, cfg.DerivedParams())
}

// newCoordinator builds the exporter; with upload set, archives are also
// published to the configured bucket. The returned close function is never nil.
func newCoordinator(ctx context.Context, cfg *config.Config, upload bool) (*export.Coordinator, func(), error) {
	coordinator := export.NewCoordinator(cfg.Export.Dir, logging.GetLogger())
	if !upload {
		return coordinator, func() {}, nil
	}
	if !cfg.Export.Upload.Enabled() {
		return nil, nil, fmt.Errorf("upload requested but export.upload.bucket is not configured")
	}
	uploader, err := export.DialGCS(ctx, cfg.Export.Upload.Bucket, cfg.Export.Upload.Prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to bucket %s: %w", cfg.Export.Upload.Bucket, err)
	}
	closeFn := func() {
		if err := uploader.Close(); err != nil {
			logging.GetLogger().WithError(err).Warn("Failed to close storage client")
		}
	}
	return coordinator.WithUploader(uploader), closeFn, nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bench-dashboard",
		Short:         "Energy and performance dashboard for web framework benchmarks",
		Long:          "Explore, compare and export energy measurements of web framework benchmark runs",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				if err := logging.SetLogLevel(logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			loadEnvironment()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to dashboard configuration file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newIdleCmd())
	rootCmd.AddCommand(newExportCmd())
	return rootCmd
}

func Execute() error {
	return newRootCmd().Execute()
}

func logSummary(cfg *config.Config, store *benchmark.Store) {
	checksum, _ := config.Checksum(cfg)
	logging.GetLogger().WithFields(logrus.Fields{
		"name":      cfg.Dashboard.Name,
		"source":    cfg.Source.Type,
		"checksum":  checksum,
		"rows":      store.Len(),
		"languages": store.Languages(),
		"names":     len(store.Names()),
	}).Info("Dataset ready")
}
