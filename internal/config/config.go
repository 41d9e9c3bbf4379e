// Package config holds the scraper configuration and its defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"dario.cat/mergo"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "config.json5"

type TransfermarktConfig struct {
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
}

type UnderstatConfig struct {
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	Cookie    string `json:"cookie"`
}

// Config is read once at startup and passed by value to every component
type Config struct {
	Leagues   []string `json:"leagues"`
	Seasons   []string `json:"seasons"`
	MatchDays int      `json:"match_days"`
	// league name -> transfermarkt competition code
	LeagueCodes map[string]string `json:"league_codes"`

	DatesConfigPath string `json:"dates_config_path"`
	PlayersPath     string `json:"players_path"`
	TeamsPath       string `json:"teams_path"`
	// optional directory of "<league>_<season>.pdf" fixture lists
	FixturePDFDir string `json:"fixture_pdf_dir"`
	// optional directory receiving a dump of every http exchange
	HTTPDumpDir string `json:"http_dump_dir"`

	TimeoutSeconds int `json:"timeout_seconds"`

	Transfermarkt TransfermarktConfig `json:"transfermarkt"`
	Understat     UnderstatConfig     `json:"understat"`
}

func Default() Config {
	return Config{
		Leagues:   []string{"La_liga", "EPL", "Bundesliga", "Serie_A", "Ligue_1"},
		Seasons:   []string{"2014", "2015", "2016", "2017", "2018", "2019", "2020", "2021"},
		MatchDays: models.MaxMatchDays,
		LeagueCodes: map[string]string{
			"La_liga":    "ES1",
			"Bundesliga": "L1",
			"EPL":        "GB1",
			"Serie_A":    "IT1",
			"Ligue_1":    "FR1",
		},
		DatesConfigPath: "football_dates_config.json",
		PlayersPath:     "data/understat_players_df.csv",
		TeamsPath:       "data/understat_teams_df.csv",
		TimeoutSeconds:  30,
		Transfermarkt: TransfermarktConfig{
			BaseURL:   "https://www.transfermarkt.com",
			UserAgent: "Custom",
		},
		Understat: UnderstatConfig{
			BaseURL:   "https://understat.com",
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/94.0.4606.81 Safari/537.36",
		},
	}
}

// Load merges the file at path (and its .local variant) over Default.
// A missing file is not an error.
func Load(path string) (Config, error) {
	out := Default()
	override, err := ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
		return Config{}, err
	}
	return out, out.Validate()
}

func (c Config) Validate() error {
	if len(c.Leagues) == 0 || len(c.Seasons) == 0 {
		return fmt.Errorf("config: leagues and seasons must not be empty")
	}
	if c.MatchDays < 1 || c.MatchDays > models.MaxMatchDays {
		return fmt.Errorf("config: match_days must be within 1..%d, got %d", models.MaxMatchDays, c.MatchDays)
	}
	for _, league := range c.Leagues {
		if _, ok := c.LeagueCodes[league]; !ok {
			return fmt.Errorf("config: no competition code for league %q", league)
		}
	}
	return nil
}

// Schedule returns a copy of the enumeration lists
func (c Config) Schedule() models.Schedule {
	return models.Schedule{
		Leagues:   slices.Clone(c.Leagues),
		Seasons:   slices.Clone(c.Seasons),
		MatchDays: c.MatchDays,
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
