package cmd

import (
	"bench-dashboard/internal/config"
	"bench-dashboard/internal/database"
	"bench-dashboard/internal/logging"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var snapshotDir string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger.WithField("config", configFile).Info("Configuration is valid")

			store, err := buildStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			logSummary(cfg, store)

			if snapshotDir == "" {
				return nil
			}
			src, closeSource, err := database.Open(cfg.Source)
			if err != nil {
				return err
			}
			defer closeSource()

			checksum, _ := config.Checksum(cfg)
			snap, err := database.Capture(cmd.Context(), src, checksum)
			if err != nil {
				return err
			}
			path, err := database.WriteSnapshot(snapshotDir, snap)
			if err != nil {
				logger.WithField("dir", snapshotDir).WithError(err).Error("Failed to write snapshot")
				return err
			}
			logger.WithField("path", path).Info("Dataset snapshot written")
			return nil
		},
	}

	validateCmd.Flags().StringVar(&snapshotDir, "snapshot", "", "Also write a replayable snapshot of the raw dataset to this directory")
	return validateCmd
}
