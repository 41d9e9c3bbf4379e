package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

const Schema = `
DROP TABLE IF EXISTS players;
CREATE TABLE players (
	idx INTEGER PRIMARY KEY,
	league TEXT NOT NULL,
	season TEXT NOT NULL,
	aggregated_to_match INTEGER NOT NULL,
	player_id TEXT,
	player_name TEXT,
	team_title TEXT,
	stats_json TEXT NOT NULL
);
CREATE INDEX players_window ON players(league, season, aggregated_to_match);

DROP TABLE IF EXISTS teams;
CREATE TABLE teams (
	idx INTEGER PRIMARY KEY,
	league TEXT NOT NULL,
	season TEXT NOT NULL,
	aggregated_to_match INTEGER NOT NULL,
	team TEXT NOT NULL,
	matches INTEGER NOT NULL,
	xg REAL, xga REAL, npxg REAL, npxga REAL,
	deep REAL, deep_allowed REAL, scored REAL, missed REAL, xpts REAL,
	wins REAL, draws REAL, loses REAL, pts REAL, npxgd REAL,
	ppda_coef REAL, oppda_coef REAL
);
CREATE INDEX teams_window ON teams(league, season, aggregated_to_match);
`

// ExportSQLite replaces the players and teams tables of the database at path
func ExportSQLite(ctx context.Context, path string, players []models.PlayerStatRecord, teams []models.TeamStatRecord) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	playerStmt, err := tx.PrepareContext(ctx, `INSERT INTO players
		(idx, league, season, aggregated_to_match, player_id, player_name, team_title, stats_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	for i, p := range players {
		stats, err := json.Marshal(p.Stats)
		if err != nil {
			return err
		}
		_, err = playerStmt.ExecContext(ctx, i, p.League, p.Season, p.AggregatedToMatch,
			p.Stats["id"], p.Stats["player_name"], p.Stats["team_title"], string(stats))
		if err != nil {
			return fmt.Errorf("failed to insert player row %d: %w", i, err)
		}
	}

	teamStmt, err := tx.PrepareContext(ctx, `INSERT INTO teams
		(idx, league, season, aggregated_to_match, team, matches,
		 xg, xga, npxg, npxga, deep, deep_allowed, scored, missed, xpts,
		 wins, draws, loses, pts, npxgd, ppda_coef, oppda_coef)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer teamStmt.Close()

	for i, t := range teams {
		_, err := teamStmt.ExecContext(ctx, i, t.League, t.Season, t.AggregatedToMatch, t.Team, t.Matches,
			t.XG, t.XGA, t.NPXG, t.NPXGA, t.Deep, t.DeepAllowed, t.Scored, t.Missed, t.XPts,
			t.Wins, t.Draws, t.Loses, t.Pts, t.NPXGD, t.PPDACoef, t.OPPDACoef)
		if err != nil {
			return fmt.Errorf("failed to insert team row %d: %w", i, err)
		}
	}

	return tx.Commit()
}
