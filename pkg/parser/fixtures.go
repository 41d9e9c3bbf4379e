// Package parser extracts football data from the raw pages and payloads of each source
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoFixtures is returned when a fixture page lists no dated matches
var ErrNoFixtures = errors.New("no dated fixtures found")

// ExtractMatchDates returns the dates of every match listed on a transfermarkt
// match-day page, in page order. Dates are read from the last path segment of
// the "datum" links in the fixture date cells.
func ExtractMatchDates(htmlContent []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML content: %w", err)
	}

	var dates []string
	doc.Find("td.zentriert.no-border").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Find("a").First().Attr("href")
		if !exists || !strings.Contains(href, "datum") {
			return
		}
		date := path.Base(strings.TrimRight(href, "/"))
		if date == "" || date == "." || date == "/" {
			return
		}
		dates = append(dates, date)
	})

	if len(dates) == 0 {
		return nil, ErrNoFixtures
	}
	return dates, nil
}
