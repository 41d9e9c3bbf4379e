package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	base := `{
		// only two leagues
		leagues: ["EPL", "Serie_A"],
		seasons: ["2021"],
		match_days: 5,
		understat: { cookie: "PHPSESSID=abc" },
	}`
	local := `{ seasons: ["2020", "2021"], players_path: "out/players.csv" }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json5"), []byte(base), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(local), 0644))

	cfg, err := Load(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)

	require.Equal(t, []string{"EPL", "Serie_A"}, cfg.Leagues)
	require.Equal(t, []string{"2020", "2021"}, cfg.Seasons)
	require.Equal(t, 5, cfg.MatchDays)
	require.Equal(t, "out/players.csv", cfg.PlayersPath)
	require.Equal(t, "PHPSESSID=abc", cfg.Understat.Cookie)
	// untouched defaults survive the merge
	require.Equal(t, "https://understat.com", cfg.Understat.BaseURL)
	require.Equal(t, "GB1", cfg.LeagueCodes["EPL"])
}

func TestLoadRejectsUnknownLeague(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{leagues: ["Eredivisie"]}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestScheduleIsACopy(t *testing.T) {
	cfg := Default()
	schedule := cfg.Schedule()
	schedule.Leagues[0] = "changed"
	require.Equal(t, "La_liga", cfg.Leagues[0])
	require.Len(t, schedule.Keys(), len(cfg.Leagues)*len(cfg.Seasons)*cfg.MatchDays)
}
