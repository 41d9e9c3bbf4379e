package teams

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

// minSimilarity is the lowest Jaro-Winkler score accepted as a match
const minSimilarity = 0.8

// Lookup returns the rows of the team whose name is closest to name
func Lookup(rows []models.TeamStatRecord, name string) []models.TeamStatRecord {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil
	}

	best, bestScore := "", 0.0
	seen := make(map[string]bool)
	for _, row := range rows {
		if seen[row.Team] {
			continue
		}
		seen[row.Team] = true

		score := matchr.JaroWinkler(target, strings.ToLower(row.Team), false)
		if score > bestScore {
			best, bestScore = row.Team, score
		}
	}
	if bestScore < minSimilarity {
		return nil
	}

	var out []models.TeamStatRecord
	for _, row := range rows {
		if row.Team == best {
			out = append(out, row)
		}
	}
	return out
}
