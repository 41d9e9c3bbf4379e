// Package models contains data structures for football league statistics
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxMatchDays is the number of rounds in a 20-team league season
const MaxMatchDays = 38

// DateWindow holds the calendar range covered by a league season up to a match-day
type DateWindow struct {
	League    string `json:"-"`
	Season    string `json:"-"`
	MatchDay  int    `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Resolved reports whether both bounds of the window are known
func (w DateWindow) Resolved() bool {
	return w.StartDate != "" && w.EndDate != ""
}

// MatchKey returns the cache key used for a match-day, e.g. "match_3"
func MatchKey(matchDay int) string {
	return "match_" + strconv.Itoa(matchDay)
}

// ParseMatchKey is the inverse of MatchKey
func ParseMatchKey(key string) (int, error) {
	n, ok := strings.CutPrefix(key, "match_")
	if !ok {
		return 0, fmt.Errorf("invalid match key %q", key)
	}
	matchDay, err := strconv.Atoi(n)
	if err != nil {
		return 0, fmt.Errorf("invalid match key %q: %w", key, err)
	}
	return matchDay, nil
}

// DatesConfig maps league -> season -> match key -> window
type DatesConfig map[string]map[string]map[string]DateWindow

// NewDatesConfig creates an empty window for every triple of the schedule
func NewDatesConfig(schedule Schedule) DatesConfig {
	cfg := make(DatesConfig, len(schedule.Leagues))
	for _, key := range schedule.Keys() {
		cfg.Set(DateWindow{League: key.League, Season: key.Season, MatchDay: key.MatchDay})
	}
	return cfg
}

// Window returns the stored window for a triple
func (c DatesConfig) Window(league, season string, matchDay int) (DateWindow, bool) {
	w, ok := c[league][season][MatchKey(matchDay)]
	if !ok {
		return DateWindow{League: league, Season: season, MatchDay: matchDay}, false
	}
	w.League, w.Season, w.MatchDay = league, season, matchDay
	return w, true
}

// Set stores a window under its own league, season and match-day
func (c DatesConfig) Set(w DateWindow) {
	seasons, ok := c[w.League]
	if !ok {
		seasons = make(map[string]map[string]DateWindow)
		c[w.League] = seasons
	}
	days, ok := seasons[w.Season]
	if !ok {
		days = make(map[string]DateWindow)
		seasons[w.Season] = days
	}
	days[MatchKey(w.MatchDay)] = w
}
