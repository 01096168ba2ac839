package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"steamsync/internal/config"
	"steamsync/internal/logging"
	"steamsync/internal/pipeline"
	"steamsync/internal/steam"
	"steamsync/internal/store"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one reconciliation pass against the remote catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			// The store tolerates a single writer; refuse to race another run.
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another steamsync run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			client, err := steam.New(cfg.Steam)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := pipeline.NewRunner(cfg, st, client, logger)
			stats, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"run complete: %d selected, %d written, %d quarantined, %d transient, %d enriched\n",
				stats.Selected, stats.Written, stats.Quarantined, stats.Transient, stats.Enriched)
			return nil
		},
	}
}
