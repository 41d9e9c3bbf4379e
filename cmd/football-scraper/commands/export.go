package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/myusername/football-statistic-scraper/internal/utils"
	"github.com/myusername/football-statistic-scraper/pkg/dataset"
)

var exportDb string

func init() {
	exportCmd.Flags().StringVar(&exportDb, "db", "football.db", "The SQLite database to write both tables to.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--db <path/to/output.db>]",
	Short: "Loads or scrapes both datasets and writes them to a SQLite database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		dates, failures := a.resolveDates(ctx, false)
		cache := a.cache(dates)
		players, playerFailures := cache.GetPlayers(ctx, true, true)
		teams, teamFailures := cache.GetTeams(ctx, true, true)

		if err := dataset.ExportSQLite(ctx, exportDb, players, teams); err != nil {
			return fmt.Errorf("failed to export to %s: %w", exportDb, err)
		}
		slog.InfoContext(ctx, "exported datasets", "db", exportDb, "players", len(players), "teams", len(teams))

		failures = append(failures, playerFailures...)
		utils.DisplayFailures(cmd.OutOrStdout(), append(failures, teamFailures...))
		return nil
	},
}
