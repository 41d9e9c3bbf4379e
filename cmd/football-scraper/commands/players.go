package commands

import (
	"github.com/spf13/cobra"

	"github.com/myusername/football-statistic-scraper/internal/utils"
)

var (
	playersRefresh bool
	playersFrom    int
	playersTo      int
)

func init() {
	playersCmd.Flags().BoolVar(&playersRefresh, "refresh", false, "Ignore the cached players table and scrape it again.")
	playersCmd.Flags().IntVar(&playersFrom, "from", 1, "First row to display.")
	playersCmd.Flags().IntVar(&playersTo, "to", 20, "Row after the last one to display.")
	rootCmd.AddCommand(playersCmd)
}

var playersCmd = &cobra.Command{
	Use:   "players [--refresh] [--from N] [--to M]",
	Short: "Loads or scrapes the players table and prints a slice of it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		dates, failures := a.resolveDates(ctx, false)
		records, playerFailures := a.cache(dates).GetPlayers(ctx, !playersRefresh, true)

		utils.DisplayPlayers(cmd.OutOrStdout(), records, playersFrom, playersTo)
		utils.DisplayFailures(cmd.OutOrStdout(), append(failures, playerFailures...))
		return nil
	},
}
