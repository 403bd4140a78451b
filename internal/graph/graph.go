package graph

import (
	"math"

	"fap/internal/automaton"
)

// Node is a drawn state.
type Node struct {
	Name string         `yaml:"name"`
	Role automaton.Role `yaml:"role"`
	X    float64        `yaml:"x"`
	Y    float64        `yaml:"y"`
}

// Edge is a drawn arrow. Label is parsed with ParseLabel.
type Edge struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Label string `yaml:"label"`
}

// Graph is the loosely structured model an editor mutates: edges may
// duplicate each other or point at deleted nodes.
type Graph struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

type options struct {
	epsilon  string
	alphabet []string
	width    float64
	height   float64
}

type Option func(*options)

func WithEpsilonGlyph(glyph string) Option {
	return func(o *options) { o.epsilon = glyph }
}

// WithDefaultAlphabet sets the alphabet used when no edge carries a symbol.
func WithDefaultAlphabet(symbols ...string) Option {
	return func(o *options) { o.alphabet = symbols }
}

// WithCanvas sets the area Export lays nodes out on.
func WithCanvas(width, height float64) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

func newOptions(opts []Option) options {
	o := options{epsilon: DefaultEpsilonGlyph, width: 700, height: 450}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Import derives a clean automaton from g. Edges touching unknown nodes or
// carrying no symbol are dropped.
func Import(g Graph, opts ...Option) *automaton.Automaton {
	o := newOptions(opts)
	b := automaton.NewBuilder()
	for _, n := range g.Nodes {
		b.AddState(n.Name, n.Role)
	}
	seen := false
	for _, e := range g.Edges {
		symbols := ParseLabel(e.Label, o.epsilon)
		if !b.AddTransition(e.From, e.To, symbols...) {
			continue
		}
		for _, sym := range symbols {
			if sym != automaton.Epsilon {
				seen = true
			}
		}
	}
	if !seen {
		b.AddAlphabet(o.alphabet...)
	}
	return b.Build()
}

// Export draws a on a circle, one merged edge per ordered state pair.
func Export(a *automaton.Automaton, opts ...Option) Graph {
	o := newOptions(opts)
	states := a.States()
	g := Graph{Nodes: make([]Node, 0, len(states))}

	cx, cy := o.width/2, o.height/2
	radius := math.Min(o.width, o.height)/2 - 40
	if radius < 0 {
		radius = 0
	}
	for i, name := range states {
		x, y := cx, cy
		if len(states) > 1 {
			angle := 2*math.Pi*float64(i)/float64(len(states)) - math.Pi/2
			x = cx + radius*math.Cos(angle)
			y = cy + radius*math.Sin(angle)
		}
		g.Nodes = append(g.Nodes, Node{Name: name, Role: a.Role(name), X: x, Y: y})
	}
	for _, t := range a.Transitions() {
		g.Edges = append(g.Edges, Edge{From: t.From, To: t.To, Label: FormatLabel(t.Symbols, o.epsilon)})
	}
	return g
}
