package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadPDFText returns the text of a fixture list, one line per visual row so
// that match-day headings and their dates stay on separate lines
func ReadPDFText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("error reading page %d of %s: %w", i, pdfPath, err)
		}
		for _, row := range rows {
			for _, text := range row.Content {
				out.WriteString(text.S)
			}
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

var (
	matchDayHeadingRegex = regexp.MustCompile(`(?i)\b(?:match\s*day|round|spieltag|jornada|giornata|journ[ée]e)\s*(\d{1,2})\b`)
	isoDateRegex         = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dayFirstDateRegex    = regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})[./](\d{4})\b`)
)

// ExtractFixtureDates groups the dates of a fixture list under their match-day
// headings. Dates are returned as sorted YYYY-MM-DD strings.
func ExtractFixtureDates(text string) map[int][]string {
	fixtures := make(map[int][]string)
	currentMatchDay := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := matchDayHeadingRegex.FindStringSubmatchIndex(line); m != nil {
			n, err := strconv.Atoi(line[m[2]:m[3]])
			if err == nil {
				currentMatchDay = n
			}
			line = line[m[1]:]
		}
		if currentMatchDay == 0 {
			continue
		}

		for _, d := range isoDateRegex.FindAllString(line, -1) {
			fixtures[currentMatchDay] = append(fixtures[currentMatchDay], d)
		}
		for _, d := range dayFirstDateRegex.FindAllStringSubmatch(line, -1) {
			day, _ := strconv.Atoi(d[1])
			month, _ := strconv.Atoi(d[2])
			if day < 1 || day > 31 || month < 1 || month > 12 {
				continue
			}
			fixtures[currentMatchDay] = append(fixtures[currentMatchDay], fmt.Sprintf("%s-%02d-%02d", d[3], month, day))
		}
	}

	for matchDay := range fixtures {
		sort.Strings(fixtures[matchDay])
	}
	return fixtures
}
