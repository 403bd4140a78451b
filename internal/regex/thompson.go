package regex

import (
	"strconv"

	"fap/internal/automaton"
)

type frag struct {
	start string
	outs  []string // states whose epsilon exits still need patching
}

type thompson struct {
	b    *automaton.Builder
	next int
}

func (c *thompson) state() string {
	name := "n" + strconv.Itoa(c.next)
	c.next++
	c.b.AddState(name, automaton.Normal)
	return name
}

func (c *thompson) patch(outs []string, to string) {
	for _, s := range outs {
		c.b.AddTransition(s, to, automaton.Epsilon)
	}
}

func (c *thompson) build(t *Term) frag {
	switch t.kind {
	case KindEmpty:
		return frag{start: c.state()}
	case KindEpsilon:
		s := c.state()
		return frag{start: s, outs: []string{s}}
	case KindSymbol:
		s1, s2 := c.state(), c.state()
		c.b.AddTransition(s1, s2, t.sym)
		return frag{start: s1, outs: []string{s2}}
	case KindConcat:
		if len(t.subs) == 0 {
			return c.build(Epsilon())
		}
		f := c.build(t.subs[0])
		for _, sub := range t.subs[1:] {
			next := c.build(sub)
			c.patch(f.outs, next.start)
			f.outs = next.outs
		}
		return f
	case KindUnion:
		s := c.state()
		var outs []string
		for _, sub := range t.subs {
			f := c.build(sub)
			c.b.AddTransition(s, f.start, automaton.Epsilon)
			outs = append(outs, f.outs...)
		}
		return frag{start: s, outs: outs}
	case KindStar:
		s := c.state()
		f := c.build(t.subs[0])
		c.patch(f.outs, s)
		c.b.AddTransition(s, f.start, automaton.Epsilon)
		return frag{start: s, outs: []string{s}}
	}
	panic("regex: unknown term kind " + strconv.Itoa(int(t.kind)))
}

// ToAutomaton builds a Thompson NFA for t with states n0, n1, ...
func ToAutomaton(t *Term) *automaton.Automaton {
	c := &thompson{b: automaton.NewBuilder()}
	f := c.build(t)
	accept := c.state()
	c.patch(f.outs, accept)
	c.b.AddState(f.start, automaton.Start)
	c.b.AddState(accept, automaton.Final)
	return c.b.Build()
}

// Matches reports whether the whole word is in the language of t.
func Matches(t *Term, word string) bool {
	return ToAutomaton(t).Accepts(word)
}
