package automaton

import (
	"sort"
	"strings"
)

type StateSet map[string]struct{}

func NewStateSet(names ...string) StateSet {
	set := make(StateSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s StateSet) Add(name string) { s[name] = struct{}{} }

func (s StateSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s StateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for n := range s {
		if !o.Has(n) {
			return false
		}
	}
	return true
}

// Key renders the set as "{a,b}" for use as a map key or a subset name.
func (s StateSet) Key() string {
	return "{" + strings.Join(s.Sorted(), ",") + "}"
}

// Closure returns the smallest superset of set closed under epsilon moves.
func (a *Automaton) Closure(set StateSet) StateSet {
	closure := make(StateSet, len(set))
	stack := make([]string, 0, len(set))
	for s := range set {
		closure.Add(s)
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range a.delta[cur][Epsilon] {
			if !closure.Has(to) {
				closure.Add(to)
				stack = append(stack, to)
			}
		}
	}
	return closure
}

// Move returns the direct successors of set on symbol, without closure.
func (a *Automaton) Move(set StateSet, symbol string) StateSet {
	res := StateSet{}
	if symbol == Epsilon {
		return res
	}
	for s := range set {
		for _, to := range a.delta[s][symbol] {
			res.Add(to)
		}
	}
	return res
}

// Step is Move followed by Closure.
func (a *Automaton) Step(set StateSet, symbol string) StateSet {
	return a.Closure(a.Move(set, symbol))
}

// Initial is the epsilon-closure of every start state.
func (a *Automaton) Initial() StateSet {
	return a.Closure(NewStateSet(a.StartStates()...))
}

func (a *Automaton) AnyFinal(set StateSet) bool {
	for s := range set {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// Accepts runs the whole word, one rune per symbol.
func (a *Automaton) Accepts(word string) bool {
	cur := a.Initial()
	for _, r := range word {
		if len(cur) == 0 {
			return false
		}
		cur = a.Step(cur, string(r))
	}
	return a.AnyFinal(cur)
}
