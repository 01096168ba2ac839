package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamsync/internal/config"
)

func newConfigCommand(configFlag *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configFlag
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			source := path
			if !exists {
				source = "defaults (no config file)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n", source)
			fmt.Fprintf(out, "data dir: %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "database: %s\n", cfg.DatabasePath())
			fmt.Fprintf(out, "listing: %s\n", listingSource(cfg))
			fmt.Fprintf(out, "batch size: %d (concurrency %d)\n", cfg.Pipeline.BatchSize, cfg.Pipeline.Concurrency)
			fmt.Fprintf(out, "stale after: %d days\n", cfg.Pipeline.StaleDays)
			return nil
		},
	})

	return configCmd
}

func listingSource(cfg *config.Config) string {
	if cfg.Steam.AppListFile != "" {
		return cfg.Steam.AppListFile
	}
	return cfg.Steam.AppListURL
}
