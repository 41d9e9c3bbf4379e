// Package dates resolves the calendar window of every league match-day
package dates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/myusername/football-statistic-scraper/pkg/models"
	"github.com/myusername/football-statistic-scraper/pkg/parser"
	"github.com/myusername/football-statistic-scraper/pkg/scraper"
)

var tracer = otel.Tracer("football-statistic-scraper/dates")

// StageDates tags failures produced while resolving date windows
const StageDates = "dates"

// ErrNothingResolved is recorded when a scrape resolves no window and nothing is saved
var ErrNothingResolved = errors.New("no date window resolved")

// Resolver builds the dates configuration, from its cache file when possible
type Resolver struct {
	Schedule models.Schedule
	// tried in order, the first source returning dates wins
	Sources   []FixtureSource
	CachePath string
}

// Resolve loads the cached configuration when loadIfPresent is set and the
// file parses, otherwise scrapes every window. Failures never abort the run.
func (r Resolver) Resolve(ctx context.Context, loadIfPresent, persist bool) (models.DatesConfig, []models.Failure) {
	if loadIfPresent {
		cfg, err := r.Load()
		if err == nil {
			slog.InfoContext(ctx, "loaded dates config", "path", r.CachePath)
			return cfg, nil
		}
		slog.WarnContext(ctx, "failed to load dates config, fetching instead", "path", r.CachePath, "err", err)
	}

	cfg, failures := r.Scrape(ctx)
	if !persist {
		return cfg, failures
	}
	// a saved file is trusted as complete by later runs
	if ctx.Err() != nil || models.Interrupted(failures) {
		slog.WarnContext(ctx, "dates scrape interrupted, not saving dates config", "path", r.CachePath)
		return cfg, failures
	}
	if resolvedWindows(cfg) == 0 {
		slog.WarnContext(ctx, "no window resolved, not saving dates config", "path", r.CachePath)
		failures = append(failures, models.Failure{Stage: StageDates, Err: ErrNothingResolved})
		return cfg, failures
	}
	if err := r.Save(cfg); err != nil {
		slog.ErrorContext(ctx, "failed to save dates config", "path", r.CachePath, "err", err)
		failures = append(failures, models.Failure{Stage: StageDates, Err: err})
	}
	return cfg, failures
}

func resolvedWindows(cfg models.DatesConfig) int {
	n := 0
	for _, seasons := range cfg {
		for _, days := range seasons {
			for _, w := range days {
				if w.Resolved() {
					n++
				}
			}
		}
	}
	return n
}

// Load reads the cache file
func (r Resolver) Load() (models.DatesConfig, error) {
	content, err := os.ReadFile(r.CachePath)
	if err != nil {
		return nil, err
	}
	var cfg models.DatesConfig
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", r.CachePath, err)
	}
	if len(cfg) == 0 {
		return nil, fmt.Errorf("%s holds no leagues", r.CachePath)
	}
	for _, seasons := range cfg {
		for _, days := range seasons {
			for key := range days {
				if _, err := models.ParseMatchKey(key); err != nil {
					return nil, fmt.Errorf("%s: %w", r.CachePath, err)
				}
			}
		}
	}
	return cfg, nil
}

// Save overwrites the cache file with cfg
func (r Resolver) Save(cfg models.DatesConfig) error {
	content, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return scraper.SaveContentToFile(r.CachePath, content)
}

// Scrape resolves every window of the schedule sequentially. The first date of
// match-day 1 starts the season and is carried forward, the last date of each
// match-day ends its window.
func (r Resolver) Scrape(ctx context.Context) (models.DatesConfig, []models.Failure) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	cfg := models.NewDatesConfig(r.Schedule)
	var failures []models.Failure

	for _, league := range r.Schedule.Leagues {
		for _, season := range r.Schedule.Seasons {
			seasonStart := ""
			for matchDay := 1; matchDay <= r.Schedule.MatchDays; matchDay++ {
				if err := ctx.Err(); err != nil {
					failures = append(failures, models.Failure{Stage: StageDates, Err: err})
					return cfg, failures
				}

				dates, err := r.matchDates(ctx, league, season, matchDay)
				if err != nil {
					slog.WarnContext(ctx, "failed to resolve match-day dates",
						"league", league, "season", season, "match", matchDay, "err", err)
					failures = append(failures, models.Failure{
						Stage:    StageDates,
						League:   league,
						Season:   season,
						MatchDay: matchDay,
						Err:      err,
					})
					continue
				}

				if matchDay == 1 {
					seasonStart = dates[0]
				}
				cfg.Set(models.DateWindow{
					League:    league,
					Season:    season,
					MatchDay:  matchDay,
					StartDate: seasonStart,
					EndDate:   dates[len(dates)-1],
				})
			}
		}
	}

	span.SetAttributes(attribute.Int("failures", len(failures)))
	slog.InfoContext(ctx, "resolved dates config", "windows", len(r.Schedule.Keys()), "failures", len(failures))
	return cfg, failures
}

func (r Resolver) matchDates(ctx context.Context, league, season string, matchDay int) ([]string, error) {
	if len(r.Sources) == 0 {
		return nil, errors.New("no fixture source configured")
	}

	var errs []error
	for _, source := range r.Sources {
		dates, err := source.MatchDates(ctx, league, season, matchDay)
		if err == nil && len(dates) == 0 {
			err = parser.ErrNoFixtures
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return dates, nil
	}
	return nil, errors.Join(errs...)
}
