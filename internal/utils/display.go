// Package utils provides terminal output helpers for the football-statistic-scraper
package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/myusername/football-statistic-scraper/pkg/dataset"
	"github.com/myusername/football-statistic-scraper/pkg/models"
)

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// DisplayTransposed prints rows [from, to) with one column per row and one line per field
func DisplayTransposed(w io.Writer, header []string, rows [][]string, from, to int) {
	from = max(from, 0)
	to = min(to, len(rows))
	if from >= to {
		fmt.Fprintln(w, "no rows to display")
		return
	}

	t := NewTable(w)
	head := table.Row{""}
	for i := from; i < to; i++ {
		head = append(head, i)
	}
	t.AppendHeader(head)

	for col, name := range header {
		line := table.Row{name}
		for i := from; i < to; i++ {
			line = append(line, rows[i][col])
		}
		t.AppendRow(line)
	}
	t.Render()
}

func DisplayPlayers(w io.Writer, records []models.PlayerStatRecord, from, to int) {
	header, rows := dataset.PlayersTable(records)
	DisplayTransposed(w, header, rows, from, to)
}

func DisplayTeams(w io.Writer, records []models.TeamStatRecord, from, to int) {
	header, rows := dataset.TeamsTable(records)
	DisplayTransposed(w, header, rows, from, to)
}

// DisplayFailures prints the number of failed items per stage and league
func DisplayFailures(w io.Writer, failures []models.Failure) {
	if len(failures) == 0 {
		return
	}

	type group struct{ stage, league string }
	counts := map[group]int{}
	for _, f := range failures {
		counts[group{f.Stage, f.League}]++
	}
	groups := make([]group, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].stage != groups[j].stage {
			return groups[i].stage < groups[j].stage
		}
		return groups[i].league < groups[j].league
	})

	t := NewTable(w)
	t.AppendHeader(table.Row{"Stage", "League", "Failures"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.stage, g.league, counts[g]})
	}
	t.AppendFooter(table.Row{"", "Total", len(failures)})
	t.Render()
}
