package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/myusername/football-statistic-scraper/pkg/models"
	"github.com/myusername/football-statistic-scraper/pkg/scraper"
)

// trailing player columns, after the sorted statistic names
var playerTagColumns = []string{"League", "Season", "aggregated_to_match"}

var teamColumns = []string{
	"xG", "xGA", "npxG", "npxGA", "deep", "deep_allowed", "scored", "missed", "xpts",
	"wins", "draws", "loses", "pts", "npxGD", "ppda_coef", "oppda_coef",
	"matches", "team", "season", "league", "aggregated_to_match",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// leading unnamed index column
	if err := w.Write(append([]string{""}, header...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(append([]string{strconv.Itoa(i)}, row...)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return scraper.SaveContentToFile(path, buf.Bytes())
}

// readCSV returns the header and rows without the index column
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != "" {
		return nil, nil, fmt.Errorf("%s has no index column header", path)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, r := range records[1:] {
		rows = append(rows, r[1:])
	}
	return records[0][1:], rows, nil
}

// PlayersTable lays the records out as rows: the sorted union of statistic
// names followed by League, Season and aggregated_to_match
func PlayersTable(records []models.PlayerStatRecord) ([]string, [][]string) {
	names := map[string]bool{}
	for _, r := range records {
		for k := range r.Stats {
			if !slices.Contains(playerTagColumns, k) {
				names[k] = true
			}
		}
	}
	statColumns := make([]string, 0, len(names))
	for k := range names {
		statColumns = append(statColumns, k)
	}
	sort.Strings(statColumns)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, len(statColumns)+len(playerTagColumns))
		for _, k := range statColumns {
			row = append(row, r.Stats[k])
		}
		row = append(row, r.League, r.Season, strconv.Itoa(r.AggregatedToMatch))
		rows = append(rows, row)
	}
	return append(statColumns, playerTagColumns...), rows
}

func WritePlayersCSV(path string, records []models.PlayerStatRecord) error {
	header, rows := PlayersTable(records)
	return writeCSV(path, header, rows)
}

// ReadPlayersCSV is the inverse of WritePlayersCSV. Empty cells are left out of Stats.
func ReadPlayersCSV(path string) ([]models.PlayerStatRecord, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	n := len(header) - len(playerTagColumns)
	if n < 0 || !slices.Equal(header[n:], playerTagColumns) {
		return nil, fmt.Errorf("%s: unexpected players header", path)
	}

	records := make([]models.PlayerStatRecord, 0, len(rows))
	for i, row := range rows {
		matchDay, err := strconv.Atoi(row[n+2])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid aggregated_to_match: %w", path, i, err)
		}
		stats := make(map[string]string, n)
		for j, name := range header[:n] {
			if row[j] != "" {
				stats[name] = row[j]
			}
		}
		records = append(records, models.PlayerStatRecord{
			Stats:             stats,
			League:            row[n],
			Season:            row[n+1],
			AggregatedToMatch: matchDay,
		})
	}
	return records, nil
}

// TeamsTable lays the records out in the persisted column order
func TeamsTable(records []models.TeamStatRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			formatFloat(r.XG), formatFloat(r.XGA), formatFloat(r.NPXG), formatFloat(r.NPXGA),
			formatFloat(r.Deep), formatFloat(r.DeepAllowed), formatFloat(r.Scored), formatFloat(r.Missed),
			formatFloat(r.XPts), formatFloat(r.Wins), formatFloat(r.Draws), formatFloat(r.Loses),
			formatFloat(r.Pts), formatFloat(r.NPXGD), formatFloat(r.PPDACoef), formatFloat(r.OPPDACoef),
			strconv.Itoa(r.Matches), r.Team, r.Season, r.League, strconv.Itoa(r.AggregatedToMatch),
		})
	}
	return slices.Clone(teamColumns), rows
}

func WriteTeamsCSV(path string, records []models.TeamStatRecord) error {
	header, rows := TeamsTable(records)
	return writeCSV(path, header, rows)
}

func ReadTeamsCSV(path string) ([]models.TeamStatRecord, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, teamColumns) {
		return nil, fmt.Errorf("%s: unexpected teams header", path)
	}

	records := make([]models.TeamStatRecord, 0, len(rows))
	for i, row := range rows {
		var floats [16]float64
		for j := range floats {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: invalid %s: %w", path, i, teamColumns[j], err)
			}
			floats[j] = v
		}
		matches, err := strconv.Atoi(row[16])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid matches: %w", path, i, err)
		}
		matchDay, err := strconv.Atoi(row[20])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid aggregated_to_match: %w", path, i, err)
		}
		records = append(records, models.TeamStatRecord{
			XG: floats[0], XGA: floats[1], NPXG: floats[2], NPXGA: floats[3],
			Deep: floats[4], DeepAllowed: floats[5], Scored: floats[6], Missed: floats[7],
			XPts: floats[8], Wins: floats[9], Draws: floats[10], Loses: floats[11],
			Pts: floats[12], NPXGD: floats[13], PPDACoef: floats[14], OPPDACoef: floats[15],
			Matches:           matches,
			Team:              row[17],
			Season:            row[18],
			League:            row[19],
			AggregatedToMatch: matchDay,
		})
	}
	return records, nil
}
