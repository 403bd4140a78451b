package dfa

import (
	"slices"
	"strconv"

	"fap/internal/automaton"
)

// completed determinizes a and completes it over alphabet, which must cover
// a's own alphabet.
func completed(a *automaton.Automaton, alphabet []string) (*table, error) {
	t, err := determinize(a)
	if err != nil {
		return nil, err
	}
	t.alphabet = alphabet
	t.complete()
	return t, nil
}

func completedPair(a, b *automaton.Automaton) (*table, *table, error) {
	alphabet := append(a.Alphabet(), b.Alphabet()...)
	slices.Sort(alphabet)
	alphabet = slices.Compact(alphabet)
	x, err := completed(a, alphabet)
	if err != nil {
		return nil, nil, err
	}
	y, err := completed(b, alphabet)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// product runs both complete tables in lockstep. A pair state is final when
// op says so for the finality of its two halves.
func product(x, y *table, op func(bool, bool) bool) *table {
	type pair struct{ p, q string }
	t := newTable(x.alphabet)
	names := map[pair]string{}
	visit := func(pr pair) (string, bool) {
		if name, ok := names[pr]; ok {
			return name, false
		}
		name := "p" + strconv.Itoa(len(names))
		names[pr] = name
		t.add(name, op(x.final[pr.p], y.final[pr.q]))
		return name, true
	}

	start := pair{x.start, y.start}
	t.start, _ = visit(start)
	queue := []pair{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := names[cur]
		for _, sym := range t.alphabet {
			nxt := pair{x.next[cur.p][sym], y.next[cur.q][sym]}
			to, fresh := visit(nxt)
			if fresh {
				queue = append(queue, nxt)
			}
			t.next[from][sym] = to
		}
	}
	return t
}

func (t *table) canonical() *automaton.Automaton {
	t.prune()
	t.minimize()
	t.rename()
	return t.automaton()
}

// Complement returns the minimal DFA accepting every word over a's alphabet
// that a rejects.
func Complement(a *automaton.Automaton) (*automaton.Automaton, error) {
	t, err := completed(a, a.Alphabet())
	if err != nil {
		return nil, err
	}
	for _, s := range t.states {
		t.final[s] = !t.final[s]
	}
	return t.canonical(), nil
}

func combine(a, b *automaton.Automaton, op func(bool, bool) bool) (*automaton.Automaton, error) {
	x, y, err := completedPair(a, b)
	if err != nil {
		return nil, err
	}
	return product(x, y, op).canonical(), nil
}

// Intersect returns the minimal DFA for words accepted by both a and b.
func Intersect(a, b *automaton.Automaton) (*automaton.Automaton, error) {
	return combine(a, b, func(p, q bool) bool { return p && q })
}

// Union returns the minimal DFA for words accepted by a or b.
func Union(a, b *automaton.Automaton) (*automaton.Automaton, error) {
	return combine(a, b, func(p, q bool) bool { return p || q })
}

// Difference returns the minimal DFA for words accepted by a but not b.
func Difference(a, b *automaton.Automaton) (*automaton.Automaton, error) {
	return combine(a, b, func(p, q bool) bool { return p && !q })
}

// Equivalent reports whether a and b accept the same words. When they do not,
// it also returns a shortest word only one of them accepts, the
// lexicographically smallest among those.
func Equivalent(a, b *automaton.Automaton) (bool, string, error) {
	x, y, err := completedPair(a, b)
	if err != nil {
		return false, "", err
	}
	diff := product(x, y, func(p, q bool) bool { return p != q })
	word, found := diff.witness()
	return !found, word, nil
}

// witness finds a shortest word leading from the start to a final state.
func (t *table) witness() (string, bool) {
	type step struct {
		prev string
		sym  string
	}
	seen := map[string]step{t.start: {}}
	queue := []string{t.start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if t.final[cur] {
			var syms []string
			for s := cur; s != t.start; s = seen[s].prev {
				syms = append(syms, seen[s].sym)
			}
			slices.Reverse(syms)
			word := ""
			for _, sym := range syms {
				word += sym
			}
			return word, true
		}
		for _, sym := range t.alphabet {
			to, ok := t.next[cur][sym]
			if !ok {
				continue
			}
			if _, ok := seen[to]; !ok {
				seen[to] = step{prev: cur, sym: sym}
				queue = append(queue, to)
			}
		}
	}
	return "", false
}
