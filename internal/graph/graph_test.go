package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/automaton"
)

func TestParseLabel(t *testing.T) {
	cases := []struct {
		label string
		glyph string
		want  []string
	}{
		{label: "a", glyph: DefaultEpsilonGlyph, want: []string{"a"}},
		{label: "0,1", glyph: DefaultEpsilonGlyph, want: []string{"0", "1"}},
		{label: "ab ba", glyph: DefaultEpsilonGlyph, want: []string{"a", "b"}},
		{label: "ε", glyph: DefaultEpsilonGlyph, want: []string{automaton.Epsilon}},
		{label: "aεb", glyph: DefaultEpsilonGlyph, want: []string{"a", automaton.Epsilon, "b"}},
		{label: "#,x", glyph: "#", want: []string{automaton.Epsilon, "x"}},
		{label: "eps", glyph: "eps", want: []string{automaton.Epsilon}},
		{label: " , ", glyph: DefaultEpsilonGlyph, want: nil},
		{label: "", glyph: DefaultEpsilonGlyph, want: nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLabel(tc.label, tc.glyph), "label %q", tc.label)
	}
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "ε,a", FormatLabel([]string{automaton.Epsilon, "a"}, "ε"))
	assert.Equal(t, []string{automaton.Epsilon, "a"}, ParseLabel(FormatLabel([]string{"", "a"}, "ε"), "ε"))
}

func TestImportDropsDanglingEdges(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{Name: "a", Role: automaton.Start},
			{Name: "b", Role: automaton.Final},
		},
		Edges: []Edge{
			{From: "a", To: "b", Label: "0"},
			{From: "a", To: "b", Label: "1,0"},
			{From: "a", To: "deleted", Label: "x"},
			{From: "deleted", To: "b", Label: "y"},
			{From: "b", To: "a", Label: ""},
		},
	}
	a := Import(g)

	assert.Equal(t, []string{"a", "b"}, a.States())
	assert.Equal(t, []string{"0", "1"}, a.Alphabet())
	assert.Equal(t, []automaton.Transition{{From: "a", To: "b", Symbols: []string{"0", "1"}}}, a.Transitions())
	start, ok := a.Start()
	require.True(t, ok)
	assert.Equal(t, "a", start)
	assert.Equal(t, []string{"b"}, a.FinalStates())
}

func TestImportEpsilonAndDefaultAlphabet(t *testing.T) {
	g := Graph{
		Nodes: []Node{{Name: "p", Role: automaton.Start}, {Name: "q", Role: automaton.Final}},
		Edges: []Edge{{From: "p", To: "q", Label: "ε"}},
	}
	a := Import(g, WithDefaultAlphabet("a", "b"))
	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
	assert.Equal(t, []string{"q"}, a.Next("p", automaton.Epsilon))
	assert.True(t, a.Accepts(""))

	withSymbols := Import(Graph{
		Nodes: g.Nodes,
		Edges: []Edge{{From: "p", To: "q", Label: "z"}},
	}, WithDefaultAlphabet("a", "b"))
	assert.Equal(t, []string{"z"}, withSymbols.Alphabet(), "default only applies when no symbol is seen")
}

func TestImportWithoutStartHasNoLanguage(t *testing.T) {
	a := Import(Graph{
		Nodes: []Node{{Name: "a", Role: automaton.Final}},
		Edges: []Edge{{From: "a", To: "a", Label: "x"}},
	})
	assert.Empty(t, a.StartStates())
	assert.False(t, a.Accepts(""))
	assert.False(t, a.Accepts("x"))
}

func TestExportRoundTrip(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("a", automaton.StartFinal).AddState("b", automaton.Normal).AddState("c", automaton.Final)
	b.AddTransition("a", "b", "0", "1")
	b.AddTransition("b", "c", automaton.Epsilon)
	b.AddTransition("c", "a", "1")
	a := b.Build()

	g := Export(a, WithCanvas(400, 400))
	require.Len(t, g.Nodes, 3)
	for _, n := range g.Nodes {
		assert.InDelta(t, 200, n.X, 200)
		assert.InDelta(t, 200, n.Y, 200)
	}
	back := Import(g)
	assert.Equal(t, a.States(), back.States())
	assert.Equal(t, a.Transitions(), back.Transitions())
	assert.Equal(t, a.StartStates(), back.StartStates())
	assert.Equal(t, a.FinalStates(), back.FinalStates())
}

func TestDecodeGraph(t *testing.T) {
	g, err := Decode(strings.NewReader(`
nodes:
  - {name: a, role: start+final, x: 10, y: 20}
  - {name: b, role: normal}
edges:
  - {from: a, to: b, label: "0,1"}
  - {from: b, to: a, label: "1"}
  - {from: b, to: gone, label: "0"}
`))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, automaton.StartFinal, g.Nodes[0].Role)
	assert.Equal(t, 20.0, g.Nodes[0].Y)

	a := Import(g)
	assert.True(t, a.Accepts("01"))
	assert.False(t, a.Accepts("0"))
	assert.Len(t, a.Transitions(), 2)

	_, err = Decode(strings.NewReader("nodes: [{name: a, role: initial}]"))
	assert.Error(t, err)
}

func TestEncodeGraph(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("a", automaton.Start).AddState("b", automaton.Final)
	b.AddTransition("a", "b", "x", automaton.Epsilon)
	g := Export(b.Build())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g))
	assert.Contains(t, buf.String(), "role: start")
	assert.Contains(t, buf.String(), "ε,x")

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, g, back)
}
