// Package players fetches per-player statistics for every resolved date window
package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/myusername/football-statistic-scraper/pkg/models"
	"github.com/myusername/football-statistic-scraper/pkg/parser"
)

var tracer = otel.Tracer("football-statistic-scraper/players")

const (
	StagePlayers = "players"
	// appended to both bounds of the requested date range
	timeOfDay  = " 23:00:00"
	dateLayout = "2006-01-02"
)

// ErrUnresolvedWindow is recorded for windows missing a start or end date
var ErrUnresolvedWindow = errors.New("date window is not resolved")

// Poster is the subset of the http client used to query the statistics endpoint
type Poster interface {
	PostForm(ctx context.Context, url string, form map[string]string, headers map[string]string) ([]byte, error)
}

// Fetcher queries the understat players endpoint
type Fetcher struct {
	Client    Poster
	BaseURL   string
	UserAgent string
	Cookie    string
	Schedule  models.Schedule
	// defaults to time.Now
	Now func() time.Time
}

func (f Fetcher) headers(league, season string) map[string]string {
	headers := map[string]string{
		"accept":           "application/json, text/javascript, */*; q=0.01",
		"content-type":     "application/x-www-form-urlencoded; charset=UTF-8",
		"x-requested-with": "XMLHttpRequest",
		"origin":           f.BaseURL,
		"referer":          fmt.Sprintf("%s/league/%s/%s", f.BaseURL, league, season),
		"accept-language":  "en-US,en;q=0.9",
		"sec-fetch-site":   "same-origin",
		"sec-fetch-mode":   "cors",
		"sec-fetch-dest":   "empty",
	}
	if f.UserAgent != "" {
		headers["user-agent"] = f.UserAgent
	}
	if f.Cookie != "" {
		headers["cookie"] = f.Cookie
	}
	return headers
}

// FetchWindow returns the statistics of every player for one date range.
// A nil slice with a non-nil error means the window should be skipped.
func (f Fetcher) FetchWindow(ctx context.Context, league, season, startDate, endDate string) ([]models.PlayerStatRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchWindow")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league),
		attribute.String("season", season),
		attribute.String("end_date", endDate),
	)

	form := map[string]string{
		"league":     league,
		"season":     season,
		"date_start": startDate + timeOfDay,
		"date_end":   endDate + timeOfDay,
	}
	body, err := f.Client.PostForm(ctx, f.BaseURL+"/main/getPlayersStats/", form, f.headers(league, season))
	if err != nil {
		slog.WarnContext(ctx, "players request failed", "league", league, "season", season, "err", err)
		return nil, err
	}

	rows, err := parser.ParsePlayersResponse(body)
	if err != nil {
		slog.WarnContext(ctx, "players response unusable", "league", league, "season", season, "err", err)
		return nil, err
	}

	records := make([]models.PlayerStatRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.PlayerStatRecord{Stats: row})
	}
	return records, nil
}

// ScrapeAll fetches every window of the schedule and concatenates the tagged
// records. Windows ending after today are skipped silently, failed windows are
// recorded and skipped.
func (f Fetcher) ScrapeAll(ctx context.Context, dates models.DatesConfig) ([]models.PlayerStatRecord, []models.Failure) {
	ctx, span := tracer.Start(ctx, "ScrapeAll")
	defer span.End()

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	today := now().Format(dateLayout)

	var records []models.PlayerStatRecord
	var failures []models.Failure
	fail := func(key models.WindowKey, err error) {
		failures = append(failures, models.Failure{
			Stage:    StagePlayers,
			League:   key.League,
			Season:   key.Season,
			MatchDay: key.MatchDay,
			Err:      err,
		})
	}

	for _, key := range f.Schedule.Keys() {
		if err := ctx.Err(); err != nil {
			failures = append(failures, models.Failure{Stage: StagePlayers, Err: err})
			break
		}

		window, _ := dates.Window(key.League, key.Season, key.MatchDay)
		if !window.Resolved() {
			fail(key, ErrUnresolvedWindow)
			continue
		}
		future, err := isInFuture(window.EndDate, today)
		if err != nil {
			fail(key, err)
			continue
		}
		if future {
			slog.DebugContext(ctx, "skipping future window", "league", key.League, "season", key.Season, "match", key.MatchDay)
			continue
		}

		fetched, err := f.FetchWindow(ctx, key.League, key.Season, window.StartDate, window.EndDate)
		if err != nil {
			fail(key, err)
			continue
		}
		for _, record := range fetched {
			record.League = key.League
			record.Season = key.Season
			record.AggregatedToMatch = key.MatchDay
			records = append(records, record)
		}
	}

	span.SetAttributes(attribute.Int("records", len(records)), attribute.Int("failures", len(failures)))
	slog.InfoContext(ctx, "scraped players", "records", len(records), "failures", len(failures))
	return records, failures
}

// isInFuture reports whether a YYYY-MM-DD date is strictly after today
func isInFuture(date, today string) (bool, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return false, fmt.Errorf("invalid end date %q: %w", date, err)
	}
	return date > today, nil
}
