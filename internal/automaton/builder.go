package automaton

import "sort"

// Builder collects states and transitions and produces an Automaton. States
// must be added before the transitions that reference them.
type Builder struct {
	roles    map[string]Role
	alphabet map[string]struct{}
	delta    map[string]map[string]StateSet
}

func NewBuilder() *Builder {
	return &Builder{
		roles:    map[string]Role{},
		alphabet: map[string]struct{}{},
		delta:    map[string]map[string]StateSet{},
	}
}

// AddState registers name with role. Adding an existing name replaces its role.
func (b *Builder) AddState(name string, role Role) *Builder {
	b.roles[name] = role
	return b
}

func (b *Builder) HasState(name string) bool {
	_, ok := b.roles[name]
	return ok
}

// AddTransition adds from -> to on every symbol. It reports false and adds
// nothing when an endpoint is unknown or no symbol is given.
func (b *Builder) AddTransition(from, to string, symbols ...string) bool {
	if !b.HasState(from) || !b.HasState(to) || len(symbols) == 0 {
		return false
	}
	moves := b.delta[from]
	if moves == nil {
		moves = map[string]StateSet{}
		b.delta[from] = moves
	}
	for _, sym := range symbols {
		if moves[sym] == nil {
			moves[sym] = StateSet{}
		}
		moves[sym].Add(to)
		if sym != Epsilon {
			b.alphabet[sym] = struct{}{}
		}
	}
	return true
}

// AddAlphabet widens the alphabet beyond the symbols seen on transitions.
func (b *Builder) AddAlphabet(symbols ...string) *Builder {
	for _, sym := range symbols {
		if sym != Epsilon {
			b.alphabet[sym] = struct{}{}
		}
	}
	return b
}

func (b *Builder) Build() *Automaton {
	a := &Automaton{
		roles:    make(map[string]Role, len(b.roles)),
		states:   make([]string, 0, len(b.roles)),
		alphabet: make([]string, 0, len(b.alphabet)),
		delta:    make(map[string]map[string][]string, len(b.delta)),
	}
	for name, role := range b.roles {
		a.roles[name] = role
		a.states = append(a.states, name)
	}
	sort.Strings(a.states)
	for sym := range b.alphabet {
		a.alphabet = append(a.alphabet, sym)
	}
	sort.Strings(a.alphabet)
	for from, moves := range b.delta {
		out := make(map[string][]string, len(moves))
		for sym, dests := range moves {
			out[sym] = dests.Sorted()
		}
		a.delta[from] = out
	}
	return a
}
