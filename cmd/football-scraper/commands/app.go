package commands

import (
	"context"
	"fmt"

	"github.com/myusername/football-statistic-scraper/internal/config"
	"github.com/myusername/football-statistic-scraper/pkg/dataset"
	"github.com/myusername/football-statistic-scraper/pkg/dates"
	"github.com/myusername/football-statistic-scraper/pkg/models"
	"github.com/myusername/football-statistic-scraper/pkg/players"
	"github.com/myusername/football-statistic-scraper/pkg/scraper"
	"github.com/myusername/football-statistic-scraper/pkg/teams"
)

// app wires every component from one configuration
type app struct {
	cfg    config.Config
	client *scraper.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	client, err := scraper.NewClient(scraper.ClientOptions{
		Timeout: cfg.Timeout(),
		DumpDir: cfg.HTTPDumpDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http client: %w", err)
	}
	return &app{cfg: cfg, client: client}, nil
}

func (a *app) resolver() dates.Resolver {
	var sources []dates.FixtureSource
	if a.cfg.FixturePDFDir != "" {
		sources = append(sources, dates.NewPDFSource(a.cfg.FixturePDFDir))
	}
	sources = append(sources, dates.TransfermarktSource{
		Client:      a.client,
		BaseURL:     a.cfg.Transfermarkt.BaseURL,
		UserAgent:   a.cfg.Transfermarkt.UserAgent,
		LeagueCodes: a.cfg.LeagueCodes,
	})
	return dates.Resolver{
		Schedule:  a.cfg.Schedule(),
		Sources:   sources,
		CachePath: a.cfg.DatesConfigPath,
	}
}

// resolveDates loads the dates config unless refresh is set, and always persists a scrape
func (a *app) resolveDates(ctx context.Context, refresh bool) (models.DatesConfig, []models.Failure) {
	return a.resolver().Resolve(ctx, !refresh, true)
}

func (a *app) playersFetcher() players.Fetcher {
	return players.Fetcher{
		Client:    a.client,
		BaseURL:   a.cfg.Understat.BaseURL,
		UserAgent: a.cfg.Understat.UserAgent,
		Cookie:    a.cfg.Understat.Cookie,
		Schedule:  a.cfg.Schedule(),
	}
}

func (a *app) teamsAggregator() teams.Aggregator {
	return teams.Aggregator{
		Client:   a.client,
		BaseURL:  a.cfg.Understat.BaseURL,
		Schedule: a.cfg.Schedule(),
	}
}

// cache builds the dataset cache, windows may be nil when only teams are needed
func (a *app) cache(windows models.DatesConfig) dataset.Cache {
	fetcher := a.playersFetcher()
	aggregator := a.teamsAggregator()
	return dataset.Cache{
		PlayersPath: a.cfg.PlayersPath,
		TeamsPath:   a.cfg.TeamsPath,
		ScrapePlayers: func(ctx context.Context) ([]models.PlayerStatRecord, []models.Failure) {
			return fetcher.ScrapeAll(ctx, windows)
		},
		ScrapeTeams: aggregator.ScrapeAll,
	}
}
