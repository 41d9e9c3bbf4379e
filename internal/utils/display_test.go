package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myusername/football-statistic-scraper/pkg/models"
)

func TestDisplayTransposed(t *testing.T) {
	var buf bytes.Buffer
	header := []string{"team", "pts"}
	rows := [][]string{{"Arsenal", "3"}, {"Chelsea", "1"}, {"Everton", "0"}}

	DisplayTransposed(&buf, header, rows, 1, 20)

	out := buf.String()
	require.Contains(t, out, "Chelsea")
	require.Contains(t, out, "Everton")
	require.NotContains(t, out, "Arsenal")
	require.Equal(t, 1, strings.Count(out, "pts"))
}

func TestDisplayTransposedEmpty(t *testing.T) {
	var buf bytes.Buffer
	DisplayTransposed(&buf, []string{"team"}, nil, 1, 20)
	require.Equal(t, "no rows to display\n", buf.String())
}

func TestDisplayFailures(t *testing.T) {
	var buf bytes.Buffer
	DisplayFailures(&buf, []models.Failure{
		{Stage: "dates", League: "EPL", Err: errors.New("a")},
		{Stage: "dates", League: "EPL", Err: errors.New("b")},
		{Stage: "teams", League: "Serie_A", Err: errors.New("c")},
	})
	out := buf.String()
	require.Contains(t, out, "Serie_A")
	require.Contains(t, out, "TOTAL")
}
