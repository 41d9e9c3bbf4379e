package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

var (
	ErrScriptNotFound = errors.New("no script contains the marker")
	ErrNoTeamsData    = errors.New("teams data literal not found")
)

// ScriptExtractor pulls an escaped JSON string literal out of an inline script.
// The literal is the text between the first Open and the next Close delimiter.
type ScriptExtractor struct {
	Marker string
	Open   string
	Close  string
}

// TeamsDataExtractor matches `var teamsData = JSON.parse('...')` on understat league pages
var TeamsDataExtractor = ScriptExtractor{Marker: "teamsData", Open: "('", Close: "')"}

// Extract finds the last script containing the marker and returns its decoded literal
func (e ScriptExtractor) Extract(htmlContent []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML content: %w", err)
	}

	script := ""
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		text := s.Text()
		if strings.Contains(text, e.Marker) {
			script = strings.TrimSpace(text)
		}
	})
	if script == "" {
		return nil, ErrScriptNotFound
	}
	return e.ExtractFromScript(script)
}

// ExtractFromScript applies the delimiters and unescapes the literal
func (e ScriptExtractor) ExtractFromScript(script string) ([]byte, error) {
	start := strings.Index(script, e.Open)
	if start < 0 {
		return nil, ErrNoTeamsData
	}
	start += len(e.Open)
	end := strings.Index(script[start:], e.Close)
	if end < 0 {
		return nil, ErrNoTeamsData
	}
	return Unescape(script[start : start+end])
}

// Unescape decodes a javascript string literal body: \xHH produces a raw byte,
// \uHHHH a utf-8 encoded rune, and the usual single character escapes.
func Unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("trailing backslash at offset %d", i)
		}
		i++
		switch s[i] {
		case 'x':
			if i+2 >= len(s) {
				return nil, fmt.Errorf("truncated \\x escape at offset %d", i-1)
			}
			b, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid \\x escape at offset %d: %w", i-1, err)
			}
			out = append(out, byte(b))
			i += 2
		case 'u':
			if i+4 >= len(s) {
				return nil, fmt.Errorf("truncated \\u escape at offset %d", i-1)
			}
			r, err := strconv.ParseUint(s[i+1:i+5], 16, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid \\u escape at offset %d: %w", i-1, err)
			}
			out = utf8.AppendRune(out, rune(r))
			i += 4
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '0':
			out = append(out, 0)
		default:
			// \\ \' \" \/ and unknown escapes keep the escaped character
			out = append(out, s[i])
		}
	}
	return out, nil
}

// ParseTeamsData extracts the team-id -> history mapping of an understat league page
func ParseTeamsData(htmlContent []byte) (map[string]models.TeamHistory, error) {
	raw, err := TeamsDataExtractor.Extract(htmlContent)
	if err != nil {
		return nil, err
	}
	var teams map[string]models.TeamHistory
	if err := json.Unmarshal(raw, &teams); err != nil {
		return nil, fmt.Errorf("error decoding teams data: %w", err)
	}
	return teams, nil
}
