package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myusername/football-statistic-scraper/internal/utils"
)

var datesRefresh bool

func init() {
	datesCmd.Flags().BoolVar(&datesRefresh, "refresh", false, "Ignore the cached dates config and scrape it again.")
	rootCmd.AddCommand(datesCmd)
}

var datesCmd = &cobra.Command{
	Use:   "dates [--refresh]",
	Short: "Resolves the date window of every league match-day.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		cfg, failures := a.resolveDates(cmd.Context(), datesRefresh)

		resolved := 0
		keys := a.cfg.Schedule().Keys()
		for _, key := range keys {
			if w, ok := cfg.Window(key.League, key.Season, key.MatchDay); ok && w.Resolved() {
				resolved++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d windows resolved, written to %s\n", resolved, len(keys), a.cfg.DatesConfigPath)
		utils.DisplayFailures(cmd.OutOrStdout(), failures)
		return nil
	},
}
