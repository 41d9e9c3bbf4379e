// Package teams reduces understat team histories to cumulative team statistics
package teams

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/myusername/football-statistic-scraper/pkg/models"
	"github.com/myusername/football-statistic-scraper/pkg/parser"
)

var tracer = otel.Tracer("football-statistic-scraper/teams")

const StageTeams = "teams"

// Fetcher is the subset of the http client used to download league pages
type Fetcher interface {
	FetchURL(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Aggregator downloads league pages and reduces each team's history
type Aggregator struct {
	Client   Fetcher
	BaseURL  string
	Schedule models.Schedule
}

// Aggregate reduces the first matchDay entries of a history. Counting columns
// are summed and the two pressing coefficients averaged.
func Aggregate(history []models.MatchRecord, matchDay int) models.TeamStatRecord {
	if matchDay < len(history) {
		history = history[:matchDay]
	}

	var out models.TeamStatRecord
	for _, m := range history {
		out.XG += m.XG
		out.XGA += m.XGA
		out.NPXG += m.NPXG
		out.NPXGA += m.NPXGA
		out.Deep += m.Deep
		out.DeepAllowed += m.DeepAllowed
		out.Scored += m.Scored
		out.Missed += m.Missed
		out.XPts += m.XPts
		out.Wins += m.Wins
		out.Draws += m.Draws
		out.Loses += m.Loses
		out.Pts += m.Pts
		out.NPXGD += m.NPXGD
		out.PPDACoef += m.PPDA.Coef()
		out.OPPDACoef += m.PPDAAllowed.Coef()
	}

	out.Matches = len(history)
	if out.Matches > 0 {
		out.PPDACoef /= float64(out.Matches)
		out.OPPDACoef /= float64(out.Matches)
	}
	return out
}

// FetchTeams downloads and parses the league page of a season
func (a Aggregator) FetchTeams(ctx context.Context, league, season string) (map[string]models.TeamHistory, error) {
	page, err := a.Client.FetchURL(ctx, fmt.Sprintf("%s/league/%s/%s", a.BaseURL, league, season), nil)
	if err != nil {
		return nil, err
	}
	return parser.ParseTeamsData(page)
}

// ScrapeAll emits one row per team for every window of the schedule. A parsed
// league page is reused for the remaining match-days of its season, a failed
// one is fetched again on the next match-day.
func (a Aggregator) ScrapeAll(ctx context.Context) ([]models.TeamStatRecord, []models.Failure) {
	ctx, span := tracer.Start(ctx, "ScrapeAll")
	defer span.End()

	var records []models.TeamStatRecord
	var failures []models.Failure
	pages := make(map[[2]string]map[string]models.TeamHistory)

	for _, key := range a.Schedule.Keys() {
		if err := ctx.Err(); err != nil {
			failures = append(failures, models.Failure{Stage: StageTeams, Err: err})
			break
		}

		pageKey := [2]string{key.League, key.Season}
		teams, ok := pages[pageKey]
		if !ok {
			var err error
			teams, err = a.FetchTeams(ctx, key.League, key.Season)
			if err != nil {
				slog.WarnContext(ctx, "failed to fetch league page",
					"league", key.League, "season", key.Season, "match", key.MatchDay, "err", err)
				failures = append(failures, models.Failure{
					Stage:    StageTeams,
					League:   key.League,
					Season:   key.Season,
					MatchDay: key.MatchDay,
					Err:      err,
				})
				continue
			}
			pages[pageKey] = teams
		}

		ids := make([]string, 0, len(teams))
		for id := range teams {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			team := teams[id]
			record := Aggregate(team.History, key.MatchDay)
			record.Team = team.Title
			record.Season = key.Season
			record.League = key.League
			record.AggregatedToMatch = key.MatchDay
			records = append(records, record)
		}
	}

	span.SetAttributes(attribute.Int("records", len(records)), attribute.Int("failures", len(failures)))
	slog.InfoContext(ctx, "scraped teams", "records", len(records), "failures", len(failures))
	return records, failures
}
