// Package dataset persists the players and teams tables and reloads them
package dataset

import (
	"context"
	"errors"
	"log/slog"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

const StagePersist = "persist"

// ErrEmptyDataset is recorded when a scrape yields no rows and nothing is saved
var ErrEmptyDataset = errors.New("scrape produced no rows")

// Cache wraps the two scrape-all operations with load-or-scrape-and-save semantics
type Cache struct {
	PlayersPath   string
	TeamsPath     string
	ScrapePlayers func(ctx context.Context) ([]models.PlayerStatRecord, []models.Failure)
	ScrapeTeams   func(ctx context.Context) ([]models.TeamStatRecord, []models.Failure)
}

func (c Cache) GetPlayers(ctx context.Context, loadIfPresent, persist bool) ([]models.PlayerStatRecord, []models.Failure) {
	return loadOrScrape(ctx, "players", c.PlayersPath, loadIfPresent, persist, ReadPlayersCSV, c.ScrapePlayers, WritePlayersCSV)
}

func (c Cache) GetTeams(ctx context.Context, loadIfPresent, persist bool) ([]models.TeamStatRecord, []models.Failure) {
	return loadOrScrape(ctx, "teams", c.TeamsPath, loadIfPresent, persist, ReadTeamsCSV, c.ScrapeTeams, WriteTeamsCSV)
}

func loadOrScrape[T any](
	ctx context.Context,
	name, path string,
	loadIfPresent, persist bool,
	read func(string) ([]T, error),
	scrape func(context.Context) ([]T, []models.Failure),
	write func(string, []T) error,
) ([]T, []models.Failure) {
	if loadIfPresent {
		records, err := read(path)
		if err == nil {
			slog.InfoContext(ctx, "loaded dataset", "dataset", name, "path", path, "rows", len(records))
			return records, nil
		}
		slog.WarnContext(ctx, "failed to load data, scraping instead", "dataset", name, "path", path, "err", err)
	}

	records, failures := scrape(ctx)
	if !persist {
		return records, failures
	}
	// a partial or empty table would be trusted by every later run
	if ctx.Err() != nil || models.Interrupted(failures) {
		slog.WarnContext(ctx, "scrape interrupted, not saving dataset", "dataset", name, "path", path)
		return records, failures
	}
	if len(records) == 0 {
		slog.WarnContext(ctx, "scrape produced no rows, not saving dataset", "dataset", name, "path", path)
		failures = append(failures, models.Failure{Stage: StagePersist, Err: ErrEmptyDataset})
		return records, failures
	}

	if err := write(path, records); err != nil {
		slog.ErrorContext(ctx, "failed to save dataset", "dataset", name, "path", path, "err", err)
		failures = append(failures, models.Failure{Stage: StagePersist, Err: err})
	} else {
		slog.InfoContext(ctx, "saved dataset", "dataset", name, "path", path, "rows", len(records))
	}
	return records, failures
}
