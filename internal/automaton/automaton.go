package automaton

import (
	"fmt"
	"slices"
	"sort"
)

// Epsilon labels a transition that consumes no input.
const Epsilon = ""

type Role int

const (
	Normal Role = iota
	Start
	Final
	StartFinal
)

func RoleOf(start, final bool) Role {
	switch {
	case start && final:
		return StartFinal
	case start:
		return Start
	case final:
		return Final
	}
	return Normal
}

func (r Role) IsStart() bool { return r == Start || r == StartFinal }
func (r Role) IsFinal() bool { return r == Final || r == StartFinal }

func (r Role) String() string {
	switch r {
	case Start:
		return "start"
	case Final:
		return "final"
	case StartFinal:
		return "start+final"
	}
	return "normal"
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	for _, role := range []Role{Normal, Start, Final, StartFinal} {
		if role.String() == string(b) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown state role %q", b)
}

// Transition is one merged edge: every symbol leading from From to To.
type Transition struct {
	From    string
	To      string
	Symbols []string
}

// Automaton is an immutable finite automaton over named states. Build one
// with a Builder; the zero value is an automaton with no states.
type Automaton struct {
	roles    map[string]Role
	states   []string
	alphabet []string
	delta    map[string]map[string][]string
}

func (a *Automaton) States() []string   { return slices.Clone(a.states) }
func (a *Automaton) Alphabet() []string { return slices.Clone(a.alphabet) }
func (a *Automaton) Len() int           { return len(a.states) }

func (a *Automaton) HasState(name string) bool {
	_, ok := a.roles[name]
	return ok
}

func (a *Automaton) Role(name string) Role { return a.roles[name] }

func (a *Automaton) IsFinal(name string) bool { return a.roles[name].IsFinal() }

func (a *Automaton) StartStates() []string {
	var out []string
	for _, s := range a.states {
		if a.roles[s].IsStart() {
			out = append(out, s)
		}
	}
	return out
}

// Start returns the start state when exactly one state carries a start role.
func (a *Automaton) Start() (string, bool) {
	starts := a.StartStates()
	if len(starts) != 1 {
		return "", false
	}
	return starts[0], true
}

func (a *Automaton) FinalStates() []string {
	var out []string
	for _, s := range a.states {
		if a.roles[s].IsFinal() {
			out = append(out, s)
		}
	}
	return out
}

// Next lists the destinations of state on symbol, sorted by name.
func (a *Automaton) Next(state, symbol string) []string {
	return slices.Clone(a.delta[state][symbol])
}

// Symbols lists the symbols leaving state, epsilon included, sorted.
func (a *Automaton) Symbols(state string) []string {
	out := make([]string, 0, len(a.delta[state]))
	for sym := range a.delta[state] {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Transitions returns one merged transition per ordered state pair, ordered
// by source then destination.
func (a *Automaton) Transitions() []Transition {
	var out []Transition
	for _, from := range a.states {
		byDest := map[string][]string{}
		for _, sym := range a.Symbols(from) {
			for _, to := range a.delta[from][sym] {
				byDest[to] = append(byDest[to], sym)
			}
		}
		dests := make([]string, 0, len(byDest))
		for to := range byDest {
			dests = append(dests, to)
		}
		sort.Strings(dests)
		for _, to := range dests {
			out = append(out, Transition{From: from, To: to, Symbols: byDest[to]})
		}
	}
	return out
}

// HasEpsilon reports whether any transition consumes no input.
func (a *Automaton) HasEpsilon() bool {
	for _, moves := range a.delta {
		if len(moves[Epsilon]) > 0 {
			return true
		}
	}
	return false
}

// IsDeterministic reports whether there is a single start state, no epsilon
// transition and at most one destination per state and symbol.
func (a *Automaton) IsDeterministic() bool {
	if _, ok := a.Start(); !ok {
		return false
	}
	for _, moves := range a.delta {
		for sym, dests := range moves {
			if sym == Epsilon || len(dests) > 1 {
				return false
			}
		}
	}
	return true
}

// IsComplete reports whether every state has a move on every alphabet symbol.
func (a *Automaton) IsComplete() bool {
	for _, s := range a.states {
		for _, sym := range a.alphabet {
			if len(a.delta[s][sym]) == 0 {
				return false
			}
		}
	}
	return true
}

// FreshName returns base, primed as often as needed to avoid every state name
// of a.
func (a *Automaton) FreshName(base string) string {
	name := base
	for a.HasState(name) {
		name += "'"
	}
	return name
}
