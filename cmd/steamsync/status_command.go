package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"steamsync/internal/config"
	"steamsync/internal/store"
)

func newStatusCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			stats, err := st.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats, st.Path()))
			return nil
		},
	}
}

func renderStats(stats *store.Stats, dbPath string) string {
	tw := table.NewWriter()
	if isTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	}

	tw.AppendHeader(table.Row{"Relation", "Rows"})
	tw.AppendRows([]table.Row{
		{"apps", strconv.FormatInt(stats.Apps, 10)},
		{"categories", strconv.FormatInt(stats.Categories, 10)},
		{"genres", strconv.FormatInt(stats.Genres, 10)},
		{"achievements", strconv.FormatInt(stats.Achievements, 10)},
		{"quarantine", strconv.FormatInt(stats.Quarantined, 10)},
	})

	lastUpdated := "never"
	if !stats.LastUpdated.IsZero() {
		lastUpdated = stats.LastUpdated.Local().Format("2006-01-02 15:04:05")
	}
	tw.AppendFooter(table.Row{"last update", lastUpdated})

	return tw.Render() + "\ndatabase: " + dbPath
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
