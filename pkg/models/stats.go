package models

// PlayerStatRecord holds the statistics of one player for one date window.
// Stats keeps every field returned by the source in its textual form.
type PlayerStatRecord struct {
	Stats             map[string]string
	League            string
	Season            string
	AggregatedToMatch int
}

// PPDA holds the attacking and defensive action counts of a match
type PPDA struct {
	Att float64 `json:"att"`
	Def float64 `json:"def"`
}

// Coef returns att/def, or 0 when def is 0
func (p PPDA) Coef() float64 {
	if p.Def == 0 {
		return 0
	}
	return p.Att / p.Def
}

// MatchRecord is one entry of a team's season history
type MatchRecord struct {
	HomeAway    string  `json:"h_a"`
	XG          float64 `json:"xG"`
	XGA         float64 `json:"xGA"`
	NPXG        float64 `json:"npxG"`
	NPXGA       float64 `json:"npxGA"`
	PPDA        PPDA    `json:"ppda"`
	PPDAAllowed PPDA    `json:"ppda_allowed"`
	Deep        float64 `json:"deep"`
	DeepAllowed float64 `json:"deep_allowed"`
	Scored      float64 `json:"scored"`
	Missed      float64 `json:"missed"`
	XPts        float64 `json:"xpts"`
	Result      string  `json:"result"`
	Date        string  `json:"date"`
	Wins        float64 `json:"wins"`
	Draws       float64 `json:"draws"`
	Loses       float64 `json:"loses"`
	Pts         float64 `json:"pts"`
	NPXGD       float64 `json:"npxGD"`
}

// TeamHistory is the season history of one team as published by the source
type TeamHistory struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	History []MatchRecord `json:"history"`
}

// TeamStatRecord holds the cumulative statistics of a team up to a match-day
type TeamStatRecord struct {
	XG                float64
	XGA               float64
	NPXG              float64
	NPXGA             float64
	Deep              float64
	DeepAllowed       float64
	Scored            float64
	Missed            float64
	XPts              float64
	Wins              float64
	Draws             float64
	Loses             float64
	Pts               float64
	NPXGD             float64
	PPDACoef          float64
	OPPDACoef         float64
	Matches           int
	Team              string
	Season            string
	League            string
	AggregatedToMatch int
}
