package dates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/myusername/football-statistic-scraper/pkg/parser"
)

// FixtureSource lists the match dates of one league match-day in fixture order
type FixtureSource interface {
	MatchDates(ctx context.Context, league, season string, matchDay int) ([]string, error)
}

// Fetcher is the subset of the http client used by the fixture sources
type Fetcher interface {
	FetchURL(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// TransfermarktSource reads the transfermarkt match-day jumplist pages
type TransfermarktSource struct {
	Client    Fetcher
	BaseURL   string
	UserAgent string
	// league name -> competition code, e.g. "EPL" -> "GB1"
	LeagueCodes map[string]string
}

func (s TransfermarktSource) URL(code, season string, matchDay int) string {
	return fmt.Sprintf("%s/jumplist/spieltag/wettbewerb/%s/saison_id/%s/spieltag/%d", s.BaseURL, code, season, matchDay)
}

func (s TransfermarktSource) MatchDates(ctx context.Context, league, season string, matchDay int) ([]string, error) {
	code, ok := s.LeagueCodes[league]
	if !ok {
		return nil, fmt.Errorf("no competition code for league %q", league)
	}

	var headers map[string]string
	if s.UserAgent != "" {
		headers = map[string]string{"user-agent": s.UserAgent}
	}
	page, err := s.Client.FetchURL(ctx, s.URL(code, season, matchDay), headers)
	if err != nil {
		return nil, err
	}
	return parser.ExtractMatchDates(page)
}

// PDFSource reads offline fixture lists named "<league>_<season>.pdf"
type PDFSource struct {
	Dir string
	// defaults to parser.ReadPDFText
	ReadText func(path string) (string, error)

	parsed map[string]map[int][]string
}

func NewPDFSource(dir string) *PDFSource {
	return &PDFSource{Dir: dir, ReadText: parser.ReadPDFText}
}

func (s *PDFSource) MatchDates(ctx context.Context, league, season string, matchDay int) ([]string, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.pdf", league, season))

	fixtures, ok := s.parsed[path]
	if !ok {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		readText := s.ReadText
		if readText == nil {
			readText = parser.ReadPDFText
		}
		text, err := readText(path)
		if err != nil {
			return nil, err
		}
		fixtures = parser.ExtractFixtureDates(text)
		if s.parsed == nil {
			s.parsed = make(map[string]map[int][]string)
		}
		s.parsed[path] = fixtures
	}

	dates := fixtures[matchDay]
	if len(dates) == 0 {
		return nil, fmt.Errorf("%s: match-day %d: %w", path, matchDay, parser.ErrNoFixtures)
	}
	return dates, nil
}
