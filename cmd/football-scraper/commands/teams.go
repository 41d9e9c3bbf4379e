package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myusername/football-statistic-scraper/internal/utils"
	"github.com/myusername/football-statistic-scraper/pkg/teams"
)

var (
	teamsRefresh bool
	teamsName    string
	teamsFrom    int
	teamsTo      int
)

func init() {
	teamsCmd.Flags().BoolVar(&teamsRefresh, "refresh", false, "Ignore the cached teams table and scrape it again.")
	teamsCmd.Flags().StringVar(&teamsName, "team", "", "Only show rows of the team closest to this name.")
	teamsCmd.Flags().IntVar(&teamsFrom, "from", 1, "First row to display.")
	teamsCmd.Flags().IntVar(&teamsTo, "to", 20, "Row after the last one to display.")
	rootCmd.AddCommand(teamsCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams [--refresh] [--team NAME]",
	Short: "Loads or scrapes the teams table and prints a slice of it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		records, failures := a.cache(nil).GetTeams(cmd.Context(), !teamsRefresh, true)
		if teamsName != "" {
			records = teams.Lookup(records, teamsName)
			if len(records) == 0 {
				fmt.Fprintf(out, "no team matches %q\n", teamsName)
				return nil
			}
		}

		utils.DisplayTeams(out, records, teamsFrom, teamsTo)
		utils.DisplayFailures(out, failures)
		return nil
	},
}
