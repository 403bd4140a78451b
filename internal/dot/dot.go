// Package dot prints automata in Graphviz format.
package dot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"fap/internal/automaton"
	"fap/internal/graph"
)

// Write prints a as a left-to-right digraph. Finals are double circles and
// every start state gets an arrow from an invisible point. Parallel edges are
// merged into one labelled edge; epsilon prints as glyph.
func Write(w io.Writer, a *automaton.Automaton, glyph string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")

	for _, s := range a.States() {
		shape := "circle"
		if a.IsFinal(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    %s [shape=%s];\n", strconv.Quote(s), shape)
	}
	for _, tr := range a.Transitions() {
		fmt.Fprintf(bw, "    %s -> %s [label=%s];\n",
			strconv.Quote(tr.From), strconv.Quote(tr.To),
			strconv.Quote(graph.FormatLabel(tr.Symbols, glyph)))
	}
	for i, s := range a.StartStates() {
		point := startPoint(a, i)
		fmt.Fprintf(bw, "    %s [shape=point]; %s -> %s;\n", point, point, strconv.Quote(s))
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// startPoint names the invisible node in front of the i-th start state. DOT
// treats _start and "_start" as one node, so names taken by states are skipped.
func startPoint(a *automaton.Automaton, i int) string {
	point := "_start"
	if i > 0 {
		point += strconv.Itoa(i)
	}
	for a.HasState(point) {
		point = "_" + point
	}
	return point
}
