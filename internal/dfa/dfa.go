package dfa

import (
	"fap/internal/automaton"
)

// table is a mutable deterministic transition table. Missing entries in
// next are allowed until complete runs.
type table struct {
	alphabet []string
	start    string
	states   []string
	final    map[string]bool
	next     map[string]map[string]string
}

func newTable(alphabet []string) *table {
	return &table{
		alphabet: alphabet,
		final:    map[string]bool{},
		next:     map[string]map[string]string{},
	}
}

func (t *table) add(name string, final bool) {
	t.states = append(t.states, name)
	t.final[name] = final
	t.next[name] = map[string]string{}
}

func (t *table) has(name string) bool {
	_, ok := t.next[name]
	return ok
}

// fromDeterministic copies a, which must satisfy IsDeterministic.
func fromDeterministic(a *automaton.Automaton) *table {
	t := newTable(a.Alphabet())
	t.start, _ = a.Start()
	for _, s := range a.States() {
		t.add(s, a.IsFinal(s))
	}
	for _, s := range t.states {
		for _, sym := range t.alphabet {
			if dests := a.Next(s, sym); len(dests) == 1 {
				t.next[s][sym] = dests[0]
			}
		}
	}
	return t
}

// subset runs the subset construction from the epsilon-closure of the start
// states. Subset states are named by their members, e.g. "{a,b}". The empty
// subset is never created; completion routes those moves to the trap.
func subset(a *automaton.Automaton) *table {
	t := newTable(a.Alphabet())
	init := a.Initial()
	t.start = init.Key()
	t.add(t.start, a.AnyFinal(init))

	queue := []automaton.StateSet{init}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		key := cur.Key()
		for _, sym := range t.alphabet {
			nxt := a.Step(cur, sym)
			if len(nxt) == 0 {
				continue
			}
			k := nxt.Key()
			if !t.has(k) {
				t.add(k, a.AnyFinal(nxt))
				queue = append(queue, nxt)
			}
			t.next[key][sym] = k
		}
	}
	return t
}

func determinize(a *automaton.Automaton) (*table, error) {
	if len(a.StartStates()) == 0 {
		return nil, ErrNotApplicable.Clone().
			WithMetadata(map[string]any{"states": a.Len()})
	}
	if a.IsDeterministic() {
		return fromDeterministic(a), nil
	}
	return subset(a), nil
}

// complete sends every missing move to a single trap state that loops on
// every symbol. It adds the trap only when some move is missing.
func (t *table) complete() {
	trap := t.freshName("trap")
	needed := false
	for _, s := range t.states {
		for _, sym := range t.alphabet {
			if _, ok := t.next[s][sym]; !ok {
				t.next[s][sym] = trap
				needed = true
			}
		}
	}
	if !needed {
		return
	}
	t.add(trap, false)
	for _, sym := range t.alphabet {
		t.next[trap][sym] = trap
	}
}

func (t *table) freshName(base string) string {
	name := base
	for t.has(name) {
		name += "'"
	}
	return name
}

func (t *table) automaton() *automaton.Automaton {
	b := automaton.NewBuilder()
	for _, s := range t.states {
		b.AddState(s, automaton.RoleOf(s == t.start, t.final[s]))
	}
	for _, s := range t.states {
		for _, sym := range t.alphabet {
			if to, ok := t.next[s][sym]; ok {
				b.AddTransition(s, to, sym)
			}
		}
	}
	b.AddAlphabet(t.alphabet...)
	return b.Build()
}
