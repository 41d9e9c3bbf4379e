package dataset

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

func samplePlayers() []models.PlayerStatRecord {
	return []models.PlayerStatRecord{
		{
			Stats:             map[string]string{"id": "647", "player_name": "Harry Kane", "xG": "0.76", "team_title": "Tottenham"},
			League:            "EPL",
			Season:            "2021",
			AggregatedToMatch: 1,
		},
		{
			Stats:             map[string]string{"id": "1250", "player_name": "Mohamed Salah, Jr", "goals": "2"},
			League:            "EPL",
			Season:            "2021",
			AggregatedToMatch: 2,
		},
	}
}

func sampleTeams() []models.TeamStatRecord {
	return []models.TeamStatRecord{
		{XG: 1.25, XGA: 0.5, Scored: 2, Pts: 3, Wins: 1, PPDACoef: 12.5, OPPDACoef: 0, Matches: 1, Team: "Arsenal", Season: "2021", League: "EPL", AggregatedToMatch: 1},
		{XG: 3.1, NPXGD: -0.75, Matches: 2, Team: "Brighton & Hove \"Albion\"", Season: "2021", League: "EPL", AggregatedToMatch: 2},
	}
}

func TestPlayersCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "players.csv")
	require.NoError(t, WritePlayersCSV(path, samplePlayers()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(content), "\n", 2)[0]
	require.Equal(t, ",goals,id,player_name,team_title,xG,League,Season,aggregated_to_match", header)

	loaded, err := ReadPlayersCSV(path)
	require.NoError(t, err)
	if diff := cmp.Diff(samplePlayers(), loaded); diff != "" {
		t.Fatalf("players changed after round trip (-want +got):\n%s", diff)
	}
}

func TestTeamsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.csv")
	require.NoError(t, WriteTeamsCSV(path, sampleTeams()))

	loaded, err := ReadTeamsCSV(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleTeams(), loaded); diff != "" {
		t.Fatalf("teams changed after round trip (-want +got):\n%s", diff)
	}
}

func TestReadTeamsCSVRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))
	_, err := ReadTeamsCSV(path)
	require.Error(t, err)
}

func TestCacheLoadOrScrape(t *testing.T) {
	dir := t.TempDir()
	scrapes := 0
	cache := Cache{
		PlayersPath: filepath.Join(dir, "players.csv"),
		TeamsPath:   filepath.Join(dir, "teams.csv"),
		ScrapePlayers: func(ctx context.Context) ([]models.PlayerStatRecord, []models.Failure) {
			scrapes++
			return samplePlayers(), []models.Failure{{Stage: "players", League: "EPL", Season: "2021", MatchDay: 3}}
		},
		ScrapeTeams: func(ctx context.Context) ([]models.TeamStatRecord, []models.Failure) {
			scrapes++
			return sampleTeams(), nil
		},
	}

	players, failures := cache.GetPlayers(context.Background(), true, true)
	require.Len(t, players, 2)
	require.Len(t, failures, 1)
	require.Equal(t, 1, scrapes)

	players, failures = cache.GetPlayers(context.Background(), true, true)
	require.Len(t, players, 2)
	require.Empty(t, failures)
	require.Equal(t, 1, scrapes, "second call must load from disk")

	// loadIfPresent=false always scrapes
	_, _ = cache.GetPlayers(context.Background(), false, false)
	require.Equal(t, 2, scrapes)

	require.NoError(t, os.WriteFile(cache.TeamsPath, []byte("garbage"), 0644))
	teams, failures := cache.GetTeams(context.Background(), true, false)
	require.Len(t, teams, 2)
	require.Empty(t, failures)
	require.Equal(t, 3, scrapes)
	content, err := os.ReadFile(cache.TeamsPath)
	require.NoError(t, err)
	require.Equal(t, "garbage", string(content), "persist=false must not write")
}

func TestCachePersistFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cache := Cache{
		TeamsPath: filepath.Join(blocker, "teams.csv"),
		ScrapeTeams: func(ctx context.Context) ([]models.TeamStatRecord, []models.Failure) {
			return sampleTeams(), nil
		},
	}
	teams, failures := cache.GetTeams(context.Background(), false, true)
	require.Len(t, teams, 2)
	require.Len(t, failures, 1)
	require.Equal(t, StagePersist, failures[0].Stage)
}

func TestCacheDoesNotSaveCancelledScrape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	ctx, cancel := context.WithCancel(context.Background())

	scrapes := 0
	cache := Cache{
		PlayersPath: path,
		ScrapePlayers: func(ctx context.Context) ([]models.PlayerStatRecord, []models.Failure) {
			scrapes++
			if scrapes == 1 {
				// first window fetched, then interrupted
				cancel()
				return samplePlayers()[:1], []models.Failure{{Stage: "players", Err: ctx.Err()}}
			}
			return samplePlayers(), nil
		},
	}

	players, failures := cache.GetPlayers(ctx, true, true)
	require.Len(t, players, 1)
	require.Len(t, failures, 1)
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	players, failures = cache.GetPlayers(context.Background(), true, true)
	require.Len(t, players, 2)
	require.Empty(t, failures)
	require.Equal(t, 2, scrapes, "an interrupted scrape must not leave a cache behind")
}

func TestCacheKeepsFileWhenInterruptedByFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.csv")
	require.NoError(t, WriteTeamsCSV(path, sampleTeams()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	cache := Cache{
		TeamsPath: path,
		ScrapeTeams: func(ctx context.Context) ([]models.TeamStatRecord, []models.Failure) {
			return sampleTeams()[:1], []models.Failure{{Stage: "teams", League: "EPL", Err: context.DeadlineExceeded}}
		},
	}
	teams, failures := cache.GetTeams(context.Background(), false, true)
	require.Len(t, teams, 1)
	require.Len(t, failures, 1)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestCacheDoesNotSaveEmptyScrape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.csv")
	cache := Cache{
		TeamsPath: path,
		ScrapeTeams: func(ctx context.Context) ([]models.TeamStatRecord, []models.Failure) {
			return nil, []models.Failure{{Stage: "teams", League: "EPL", Season: "2021", MatchDay: 1, Err: errors.New("connection refused")}}
		},
	}

	teams, failures := cache.GetTeams(context.Background(), true, true)
	require.Empty(t, teams)
	require.Len(t, failures, 2)
	require.ErrorIs(t, failures[1], ErrEmptyDataset)

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "football.db")
	ctx := context.Background()

	require.NoError(t, ExportSQLite(ctx, path, samplePlayers(), sampleTeams()))
	// exporting twice replaces the tables
	require.NoError(t, ExportSQLite(ctx, path, samplePlayers(), sampleTeams()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var players, teams int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM players").Scan(&players))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&teams))
	require.Equal(t, 2, players)
	require.Equal(t, 2, teams)

	var name, title string
	require.NoError(t, db.QueryRow("SELECT player_name, team_title FROM players WHERE player_id = '647'").Scan(&name, &title))
	require.Equal(t, "Harry Kane", name)
	require.Equal(t, "Tottenham", title)

	var ppda float64
	require.NoError(t, db.QueryRow("SELECT ppda_coef FROM teams WHERE team = 'Arsenal'").Scan(&ppda))
	require.Equal(t, 12.5, ppda)
}
