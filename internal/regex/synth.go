package regex

import "fap/internal/automaton"

// gnfa is a generalized automaton whose edges carry terms. A nil label means
// no edge is known yet, which is not the same as an edge labelled ∅.
type gnfa struct {
	names   []string
	labels  [][]*Term
	removed []bool
	start   int
	final   int
}

func newGNFA(a *automaton.Automaton) *gnfa {
	states := a.States()
	n := len(states) + 2
	g := &gnfa{
		names:   append(states, a.FreshName("Start+"), a.FreshName("Final+")),
		labels:  make([][]*Term, n),
		removed: make([]bool, n),
		start:   n - 2,
		final:   n - 1,
	}
	for i := range g.labels {
		g.labels[i] = make([]*Term, n)
	}
	index := make(map[string]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	for _, t := range a.Transitions() {
		terms := make([]*Term, 0, len(t.Symbols))
		for _, sym := range t.Symbols {
			if sym == automaton.Epsilon {
				terms = append(terms, Epsilon())
			} else {
				terms = append(terms, Symbol(sym))
			}
		}
		g.labels[index[t.From]][index[t.To]] = unionOf(terms)
	}
	for _, s := range a.StartStates() {
		g.labels[g.start][index[s]] = Epsilon()
	}
	for _, s := range a.FinalStates() {
		g.labels[index[s]][g.final] = Epsilon()
	}
	return g
}

// eliminate rips q out, rerouting every u -> q -> v path through u -> v.
func (g *gnfa) eliminate(q, maxPasses int) {
	loop := g.labels[q][q]
	for u := range g.names {
		in := g.labels[u][q]
		if u == q || g.removed[u] || in == nil {
			continue
		}
		for v := range g.names {
			out := g.labels[q][v]
			if v == q || g.removed[v] || out == nil {
				continue
			}
			parts := []*Term{in}
			if loop != nil {
				parts = append(parts, Star(loop))
			}
			path := Concat(append(parts, out)...)
			if cur := g.labels[u][v]; cur != nil {
				path = Union(cur, path)
			}
			g.labels[u][v], _ = SimplifyN(path, maxPasses)
		}
	}
	g.removed[q] = true
}

// Synthesize converts a into an equivalent regular expression by state
// elimination. States are eliminated in ascending name order so the result
// does not depend on how a was built. Zero or several start states are
// handled through the synthetic start.
func Synthesize(a *automaton.Automaton, opts ...Option) *Term {
	o := newOptions(opts)
	if len(a.StartStates()) == 0 || len(a.FinalStates()) == 0 {
		return Empty()
	}
	g := newGNFA(a)
	for q := 0; q < g.start; q++ {
		g.eliminate(q, o.maxPasses)
	}
	res := g.labels[g.start][g.final]
	if res == nil {
		return Empty()
	}
	res, _ = SimplifyN(res, o.maxPasses)
	return res
}
