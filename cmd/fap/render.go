package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"fap/internal/automaton"
	"fap/internal/simulator"
)

// renderRows prints header cells verbatim; symbols are case sensitive.
func renderRows(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// renderTransitions prints one row per state and one column per symbol, with
// an epsilon column when a has epsilon moves. Start states are marked "->"
// and finals "*".
func renderTransitions(w io.Writer, a *automaton.Automaton, glyph string) error {
	symbols := a.Alphabet()
	header := append([]string{"State"}, symbols...)
	if a.HasEpsilon() {
		symbols = append(symbols, automaton.Epsilon)
		header = append(header, glyph)
	}
	rows := make([][]string, 0, a.Len())
	for _, s := range a.States() {
		row := []string{stateLabel(a, s)}
		for _, sym := range symbols {
			dests := a.Next(s, sym)
			if len(dests) == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, strings.Join(dests, ","))
		}
		rows = append(rows, row)
	}
	return renderRows(w, header, rows)
}

func renderTrace(w io.Writer, trace []simulator.Snapshot) error {
	rows := make([][]string, 0, len(trace))
	for _, snap := range trace {
		active := "∅"
		if !snap.Stuck() {
			active = strings.Join(snap.Active, ",")
		}
		verdict := snap.Phase.String()
		if snap.Phase == simulator.Finished {
			verdict = "rejected"
			if snap.Accepted {
				verdict = "accepted"
			}
		}
		rows = append(rows, []string{fmt.Sprint(snap.Position), snap.Symbol, active, verdict})
	}
	return renderRows(w, []string{"Step", "Read", "Active", "Status"}, rows)
}
