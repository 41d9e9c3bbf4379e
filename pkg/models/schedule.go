package models

// Schedule is the fixed set of leagues, seasons and match-days to scrape
type Schedule struct {
	Leagues   []string
	Seasons   []string
	MatchDays int
}

// WindowKey identifies one (league, season, match-day) triple
type WindowKey struct {
	League   string
	Season   string
	MatchDay int
}

// Keys enumerates the cross product in league, season, match-day order
func (s Schedule) Keys() []WindowKey {
	keys := make([]WindowKey, 0, len(s.Leagues)*len(s.Seasons)*s.MatchDays)
	for _, league := range s.Leagues {
		for _, season := range s.Seasons {
			for matchDay := 1; matchDay <= s.MatchDays; matchDay++ {
				keys = append(keys, WindowKey{League: league, Season: season, MatchDay: matchDay})
			}
		}
	}
	return keys
}
