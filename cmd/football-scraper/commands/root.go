package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/myusername/football-statistic-scraper/internal/config"
	"github.com/myusername/football-statistic-scraper/internal/utils"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "football-scraper",
	Short: "football-scraper collects understat player and team statistics per match-day.",
	Long: `football-scraper resolves the calendar window of every league match-day,
then scrapes cumulative player and team statistics for each window.
Results are cached on disk and only scraped again when the cache is missing.

Without a subcommand it loads (or scrapes) both datasets and prints a sample.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		dates, failures := a.resolveDates(ctx, false)
		cache := a.cache(dates)

		players, playerFailures := cache.GetPlayers(ctx, true, true)
		utils.DisplayPlayers(out, players, 1, 20)
		fmt.Fprintln(out, "*****************************")
		teams, teamFailures := cache.GetTeams(ctx, true, true)
		utils.DisplayTeams(out, teams, 1, 20)

		failures = append(failures, playerFailures...)
		utils.DisplayFailures(out, append(failures, teamFailures...))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the json5 configuration file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context, version string) {
	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
